/*
Package webview defines the browser-engine surface a platform view drives.

The interfaces mirror what a native web view exposes: a View with navigation,
script evaluation and scroll state, Settings, a CookieManager and WebStorage
shared by every view of an Engine, and the callback capabilities a view
reports through:

  - Client: navigation interception and page lifecycle
  - ChromeClient: title changes and new-window requests
  - ScriptChannel: named conduits page script posts messages into

Engines are expected to invoke callbacks on the same thread that drives the
View. The engine package provides a headless implementation.
*/
package webview
