package app

import (
	"github.com/vk/toolreg/internal/namespace"
	"github.com/vk/toolreg/tools/iterate"
	"github.com/vk/toolreg/tools/serialize"
	"github.com/vk/toolreg/tools/text"
)

// coreNamespaces builds the definitive list of builtin namespaces compiled
// into the toolreg binary. Construction also parks the deferred member
// decorations, so this runs once per App.
func coreNamespaces() []*namespace.Namespace {
	return []*namespace.Namespace{
		text.Namespace(),
		iterate.Namespace(),
		serialize.Namespace(),
	}
}
