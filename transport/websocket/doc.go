// Package websocket streams board resolutions to subscribed clients.
//
// The package uses a hub-and-spoke model: a central Hub owns every
// connection, and each client runs a read pump and a write pump goroutine.
//
// Clients subscribe to a single board with /ws?board=<config_id>. Every
// resolution made through the REST API on that board is pushed as JSON:
//
//	{"board": "classic", "event": "resolution", "data": {...ResolveResult}}
//
// Batch resolutions use the "batch_resolution" event and saved boards the
// "board_saved" event. Incoming client messages are ignored.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	defer hub.Stop()
//
//	hub.ServeWS(w, r, "classic")
//	hub.BroadcastResolution("classic", result)
package websocket
