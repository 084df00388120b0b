/*
Package platformview bridges a method channel to a browser-engine view.

# Overview

Each WebView owns one engine view and one method channel named
"plugins.flutter.io/webview_<id>". Inbound calls are routed through a fixed
method table; view callbacks flow back out on the same channel as
fire-and-forget invocations:

	host ──call──▶ WebView.OnMethodCall ──▶ handler ──▶ webview.View
	host ◀─event── NavigationDelegate / chromeClient / JavaScriptChannel ◀── engine

# Method Table

	loadUrl{url, headers?}            -> null
	updateSettings{map}               -> null
	updateCookies{list}               -> null (sets cookies, reloads)
	canGoBack / canGoForward          -> bool
	goBack / goForward / reload       -> null
	currentUrl                        -> string
	evaluateJavascript{string}        -> string (asynchronous)
	addJavascriptChannels{list}       -> null
	removeJavascriptChannels{list}    -> null
	clearCache                        -> null
	getTitle                          -> string
	scrollTo / scrollBy{x, y}         -> null
	getScrollX / getScrollY           -> int

Unknown methods are answered as not implemented and touch nothing.

# Outbound Events

	onPageChangeTitle{title}, onPageJumpURL{url}
	onPageStarted{url}, onPageFinished{url}
	onWebResourceError{errorCode, description, errorType, failingUrl}
	navigationRequest{url, isForMainFrame}   (main frame expects a bool reply)
	javascriptChannelMessage{channel, message}

# Cookies and the Initial Load

When creation parameters carry cookies, the cookie store is cleared and the
list applied before initialUrl loads. On platforms where clearing is
asynchronous the load waits for the clear callback; otherwise everything
happens inline. The choice is a capability flag resolved once per view.

# Threading

All calls and engine callbacks are expected on one thread (see the looper
package). Nothing here locks except the Factory's view registry, which the
HTTP side reads.
*/
package platformview
