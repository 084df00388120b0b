// Package ws carries method channels over WebSocket connections.
//
// Every connection is a session: it owns a looper standing in for the UI
// thread, a headless engine and a platform view factory bound to the
// flutter/platform_views channel. Frames are channel envelopes:
//
//	{"type":"call","id":1,"channel":"flutter/platform_views","method":"create","args":{...}}
//	{"type":"reply","id":1,"status":"success","result":1}
//
// A call with id 0 expects no reply. Calls from the server (page events,
// navigation requests, script channel messages) use the same envelope, and
// the client answers them with replies carrying the server's id.
//
// Example Usage:
//
//	handler := ws.NewHandler(ws.Options{Settings: cfg.Engine, Logger: logger})
//	router.GET("/stream", handler.HandleConnection)
package ws
