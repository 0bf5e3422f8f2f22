// Package load reads model documents and builds metadata models from them.
//
// A document is YAML, JSON or msgpack; the format follows the file
// extension. Entity and property references are resolved before the model
// is built, and every unresolved reference is reported as a
// *relmap.LoadError naming the entity and member it was found in.
//
//	m, err := load.Load("testdata/shop.yaml")
//	if err != nil {
//		return err
//	}
//	err = validator.Validate(m)
package load
