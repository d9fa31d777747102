/*
Package registry maps export format names to the encoders that write them.

Encoders are registered during initialization, typically from init() functions:

	registry.RegisterEncoder("json", func(w io.Writer, v interface{}) error {
	    return json.NewEncoder(w).Encode(v)
	})

and resolved by name when a table is exported:

	enc, err := registry.GetEncoder("yaml")

Registering the same name twice panics. Lookups are case-insensitive.
*/
package registry
