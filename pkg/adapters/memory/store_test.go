package memory_test

import (
	"testing"

	"github.com/dkuanyshbaev/ioracle-core/pkg/adapters/memory"
	"github.com/dkuanyshbaev/ioracle-core/pkg/ports"
)

func TestMemoryCounterStore_Contract(t *testing.T) {
	ports.RunCounterStoreContract(t, memory.NewCounterStore())
}
