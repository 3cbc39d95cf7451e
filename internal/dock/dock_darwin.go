//go:build darwin

package dock

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa

#import <Cocoa/Cocoa.h>
#include <stdlib.h>

static void setDockBadge(const char *label) {
    NSString *text = [NSString stringWithUTF8String:label];
    dispatch_async(dispatch_get_main_queue(), ^{
        [[NSApp dockTile] setBadgeLabel:([text length] == 0 ? nil : text)];
    });
}
*/
import "C"

import "unsafe"

// Badge sets the dock tile label.
type Badge struct{}

// New returns the dock badge. appID is unused on macOS.
func New(appID string) (*Badge, error) {
	return &Badge{}, nil
}

// SetBadgeCount updates the dock tile label on the main thread.
func (b *Badge) SetBadgeCount(n int) error {
	label := C.CString(Label(n))
	defer C.free(unsafe.Pointer(label))
	C.setDockBadge(label)
	return nil
}

func (b *Badge) Close() error { return nil }
