// Package engine is a headless browser engine behind the webview
// interfaces.
//
// Pages are fetched over HTTP, decoded to UTF-8 and parsed for their title
// and inline scripts. Each view owns a goja runtime that runs page scripts
// and evaluateJavascript calls with a bounded run time. Views, the cookie
// jar and web storage belong to one engine; the engine posts every
// asynchronous callback to its looper, so clients only ever observe a view
// on that looper.
package engine
