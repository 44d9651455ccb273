// Package entity models API resources as ordered property maps with change
// tracking.
//
// Responses are decoded into Properties, an insertion-ordered mapping from
// field name to a tagged Value. Object wraps a Properties with a snapshot
// of the last saved state so that Save can send only what changed.
// Product, Customer and Sale layer typed accessors over well-known keys,
// falling back across the key names used by different API generations.
//
// # Usage
//
//	product, err := client.GetProduct(ctx, id)
//	if err != nil {
//		return err
//	}
//	product.SetName("Flat White")
//	if err := product.Save(ctx); err != nil {
//		return err
//	}
//
// Save sends the changed keys plus "id" as an update when the object has
// an id, and the full property set as a create when it does not.
package entity
