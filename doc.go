// Package webclient provides a synchronous/asynchronous HTTP request client
// facade with pluggable entity transports.
//
// A Web handle wraps one configured HTTP engine and is safe for concurrent
// use. Typed clients are bound to a single URL and serialize request entities
// through a Transport (JSON by default):
//
//	web, err := webclient.New(webclient.Config{
//	    Name:    "orders",
//	    Timeout: 30 * time.Second,
//	    Realm:   webclient.BasicRealm("alice", "secret", true),
//	})
//	defer web.Close()
//
//	orders := webclient.ClientOf[Order](web, "https://api.example.com/orders")
//	resp, err := orders.Post(ctx, Order{ID: "42"})
//
// Every operation also has an asynchronous variant that returns a Future
// resolved by a caller-supplied Executor:
//
//	fut := orders.GetAsync(ctx, webclient.GoExecutor{})
//	resp, err := fut.Get(ctx)
//
// Subpackages provide the supporting layers:
//
//   - transport: entity serialization strategies (JSON, XML, plain text)
//   - engine: the wrapped HTTP engine, realm authentication and response futures
//   - logger: zerolog-based structured logging
//   - config: viper-based configuration file loading
package webclient
