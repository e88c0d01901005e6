package htmlnode

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Attributes is an attribute mapping that iterates in insertion order so
// repeated renders of the same node are byte-identical.
type Attributes struct {
	entries *linkedhashmap.Map
}

// NewAttributes builds an attribute set from alternating name/value pairs.
// A trailing name without a value is ignored.
func NewAttributes(pairs ...string) *Attributes {
	attrs := &Attributes{entries: linkedhashmap.New()}
	for i := 0; i+1 < len(pairs); i += 2 {
		attrs.Set(pairs[i], pairs[i+1])
	}
	return attrs
}

// Set stores value under name. Re-setting an existing name keeps its
// original position.
func (a *Attributes) Set(name, value string) *Attributes {
	if a.entries == nil {
		a.entries = linkedhashmap.New()
	}
	a.entries.Put(name, value)
	return a
}

// Get returns the value stored under name.
func (a *Attributes) Get(name string) (string, bool) {
	if a == nil || a.entries == nil {
		return "", false
	}
	value, ok := a.entries.Get(name)
	if !ok {
		return "", false
	}
	return value.(string), true
}

// Len reports the number of attributes.
func (a *Attributes) Len() int {
	if a == nil || a.entries == nil {
		return 0
	}
	return a.entries.Size()
}

// Names returns attribute names in insertion order.
func (a *Attributes) Names() []string {
	if a.Len() == 0 {
		return nil
	}
	keys := a.entries.Keys()
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		names = append(names, key.(string))
	}
	return names
}

// String renders every attribute as ` name="value"`, each preceded by a
// single space. An empty set renders as "".
func (a *Attributes) String() string {
	if a.Len() == 0 {
		return ""
	}
	var b strings.Builder
	it := a.entries.Iterator()
	for it.Next() {
		fmt.Fprintf(&b, ` %s="%s"`, it.Key(), it.Value())
	}
	return b.String()
}
