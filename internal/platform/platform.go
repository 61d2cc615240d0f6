// Package platform reports the native widths of the platform-dependent
// integer aliases a schema may use. Aliases the host does not expose are
// simply absent from the table.
package platform

import "unsafe"

// Alias is the measured shape of one platform integer alias.
type Alias struct {
	Bytes  int
	Signed bool
}

var table = map[string]Alias{
	// C short is 16 bits on every platform the generator targets.
	"gshort":   {Bytes: 2, Signed: true},
	"gushort":  {Bytes: 2, Signed: false},
	"gint":     {Bytes: int(unsafe.Sizeof(int32(0))), Signed: true},
	"guint":    {Bytes: int(unsafe.Sizeof(uint32(0))), Signed: false},
	"gsize":    {Bytes: int(unsafe.Sizeof(uintptr(0))), Signed: false},
	"gssize":   {Bytes: int(unsafe.Sizeof(uintptr(0))), Signed: true},
	"goffset":  {Bytes: int(unsafe.Sizeof(int64(0))), Signed: true},
	"gintptr":  {Bytes: int(unsafe.Sizeof(uintptr(0))), Signed: true},
	"guintptr": {Bytes: int(unsafe.Sizeof(uintptr(0))), Signed: false},
	"glong":    {Bytes: int(unsafe.Sizeof(int(0))), Signed: true},
	"gulong":   {Bytes: int(unsafe.Sizeof(uint(0))), Signed: false},
}

// Lookup returns the measured width and signedness of a platform integer
// alias, and whether the host offers it at all.
func Lookup(name string) (Alias, bool) {
	a, ok := table[name]
	return a, ok
}
