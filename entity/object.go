package entity

import (
	"context"
	"errors"
	"fmt"
)

// IDKey is the identifier field present on saved resources.
const IDKey = "id"

// Resource names understood by a Store.
const (
	ResourceProducts  = "products"
	ResourceCustomers = "customers"
	ResourceSales     = "sales"
)

// ErrNoStore is returned by Save on an object that was built without a Store.
var ErrNoStore = errors.New("entity: object has no store")

// Store persists objects. Create receives every property; Update receives
// only the changed ones plus the id. Both return the server's view of the
// resource, which may be nil.
type Store interface {
	Create(ctx context.Context, resource string, data *Properties) (*Properties, error)
	Update(ctx context.Context, resource, id string, changes *Properties) (*Properties, error)
}

// Object is a resource with change tracking against the last saved state.
// It is not safe for concurrent use.
type Object struct {
	resource string
	props    *Properties
	snapshot *Properties
	store    Store
}

// NewObject wraps props. The snapshot starts equal to props, so a freshly
// fetched object has no pending changes.
func NewObject(resource string, props *Properties, store Store) *Object {
	if props == nil {
		props = NewProperties()
	}
	return &Object{
		resource: resource,
		props:    props,
		snapshot: props.Clone(),
		store:    store,
	}
}

// Resource returns the collection the object belongs to.
func (o *Object) Resource() string { return o.resource }

// Properties returns the live property map.
func (o *Object) Properties() *Properties { return o.props }

// ID returns the identifier, or "" for an unsaved object.
func (o *Object) ID() string {
	id, _ := o.props.String(IDKey)
	return id
}

// Get returns the current value of key.
func (o *Object) Get(key string) (Value, bool) { return o.props.Get(key) }

// Set updates key.
func (o *Object) Set(key string, v any) { o.props.Set(key, v) }

// Changed returns every key whose value differs from the snapshot, in
// current key order. The id is always included when present.
func (o *Object) Changed() *Properties {
	changed := NewProperties()
	for _, key := range o.props.Keys() {
		current, _ := o.props.Get(key)
		if key == IDKey {
			changed.Set(key, current)
			continue
		}
		saved, ok := o.snapshot.Get(key)
		if !ok || !saved.Equal(current) {
			changed.Set(key, current)
		}
	}
	return changed
}

// HasChanges reports whether anything other than the id differs from the
// snapshot.
func (o *Object) HasChanges() bool {
	changed := o.Changed()
	if changed.Has(IDKey) {
		return changed.Len() > 1
	}
	return changed.Len() > 0
}

// Save persists the object. Objects with an id are updated with their
// changed keys and are left alone when nothing changed. Objects without
// one are created with all keys. The server's response is merged in and
// becomes the new snapshot.
func (o *Object) Save(ctx context.Context) error {
	if o.store == nil {
		return ErrNoStore
	}

	var (
		saved *Properties
		err   error
	)
	if id := o.ID(); id != "" {
		if !o.HasChanges() {
			return nil
		}
		saved, err = o.store.Update(ctx, o.resource, id, o.Changed())
		if err != nil {
			return fmt.Errorf("update %s %s: %w", o.resource, id, err)
		}
	} else {
		saved, err = o.store.Create(ctx, o.resource, o.props.Clone())
		if err != nil {
			return fmt.Errorf("create %s: %w", o.resource, err)
		}
	}

	for _, key := range saved.Keys() {
		v, _ := saved.Get(key)
		o.props.Set(key, v)
	}
	o.snapshot = o.props.Clone()
	return nil
}

// MarshalJSON encodes the current properties.
func (o *Object) MarshalJSON() ([]byte, error) {
	return o.props.MarshalJSON()
}
