package app

import (
	"testing"
	"time"

	"github.com/dwikikusuma/coffee-order/internal/notification/domain"
	"github.com/dwikikusuma/coffee-order/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedNewestFirst(t *testing.T) {
	clk := clock.NewMock(time.Unix(100, 0))
	f := NewFeed(clk, 0, nil)

	f.Notify("first", "")
	clk.Add(time.Second)
	f.Notifier(domain.KindOrderReady).Notify("second", "ready")

	list := f.List()
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Title)
	assert.Equal(t, domain.KindOrderReady, list[0].Kind)
	assert.Equal(t, time.Unix(101, 0), list[0].CreatedAt)
	assert.Equal(t, domain.KindInfo, list[1].Kind)
	assert.NotEqual(t, list[0].ID, list[1].ID)
}

func TestFeedReadState(t *testing.T) {
	f := NewFeed(clock.NewMock(time.Unix(0, 0)), 0, nil)
	a := f.Push(domain.KindCart, "a", "")
	f.Push(domain.KindCart, "b", "")
	f.Push(domain.KindCart, "c", "")
	assert.Equal(t, 3, f.UnreadCount())

	f.MarkRead(a.ID)
	f.MarkRead("missing")
	assert.Equal(t, 2, f.UnreadCount())

	f.MarkAllRead()
	assert.Equal(t, 0, f.UnreadCount())
}

func TestFeedCapacity(t *testing.T) {
	f := NewFeed(clock.NewMock(time.Unix(0, 0)), 2, nil)
	f.Notify("1", "")
	f.Notify("2", "")
	f.Notify("3", "")

	list := f.List()
	require.Len(t, list, 2)
	assert.Equal(t, "3", list[0].Title)
	assert.Equal(t, "2", list[1].Title)
}
