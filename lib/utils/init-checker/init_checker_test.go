package initchecker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type store struct{}

func TestCheckInit(t *testing.T) {
	t.Run(`initialized`, func(t *testing.T) {
		require.NotPanics(t, func() { CheckInit("store", &store{}, "name", "value") })
	})

	t.Run(`nil interface`, func(t *testing.T) {
		require.PanicsWithValue(t, "xls: зависимость не инициализирована", func() { CheckInit("xls", nil) })
	})

	t.Run(`typed nil pointer`, func(t *testing.T) {
		var s *store
		require.Panics(t, func() { CheckInit("store", s) })
	})

	t.Run(`odd arguments`, func(t *testing.T) {
		require.Panics(t, func() { CheckInit("store") })
	})
}
