package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHistoryKind(t *testing.T) {
	t.Run(`parse kind`, func(t *testing.T) {
		kind, err := ParseHistoryKind("asset")
		require.Nil(t, err)
		require.Equal(t, HistoryKindAsset, kind)

		_, err = ParseHistoryKind("salary")
		require.EqualError(t, err, "неизвестный вид истории: salary")
	})

	t.Run(`parse resource`, func(t *testing.T) {
		kind, err := ParseHistoryResource("station-history")
		require.Nil(t, err)
		require.Equal(t, HistoryKindStation, kind)

		_, err = ParseHistoryResource("station")
		require.NotNil(t, err)
	})

	t.Run(`field semantics`, func(t *testing.T) {
		require.Equal(t, "description", HistoryKindStatus.Spec().TextParam)
		require.Equal(t, "status", HistoryKindStatus.Spec().EnumParam)
		require.Equal(t, "remarks", HistoryKindAsset.Spec().TextParam)
		require.Equal(t, "action", HistoryKindStation.Spec().EnumParam)
		require.False(t, HistoryKindStatus.HasReference())
		require.True(t, HistoryKindAsset.HasReference())
	})

	t.Run(`allowed values`, func(t *testing.T) {
		require.True(t, HistoryKindStatus.IsAllowed("dismissed"))
		require.False(t, HistoryKindStatus.IsAllowed("allocated"))
		require.True(t, HistoryKindAsset.IsAllowed("transferred"))
		require.True(t, HistoryKindStation.IsAllowed("transferred"))
		require.False(t, HistoryKindAsset.IsAllowed("relieved"))
		require.False(t, HistoryKindStation.IsAllowed("returned"))
		require.True(t, EmployeeStatusRetired.IsValid())
		require.False(t, EmployeeStatus("vacation").IsValid())
	})
}
