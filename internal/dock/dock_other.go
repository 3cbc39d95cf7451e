//go:build !darwin && !linux

package dock

// Badge is a stub; Windows has no launcher badge reachable without a
// taskbar overlay icon.
type Badge struct{}

func New(appID string) (*Badge, error) {
	return nil, ErrUnsupported
}

func (b *Badge) SetBadgeCount(n int) error { return ErrUnsupported }

func (b *Badge) Close() error { return nil }
