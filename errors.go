package vmd

import "errors"

var (
	// ErrDuplicateGroup reports a config group header seen twice in one source.
	ErrDuplicateGroup = errors.New("group defined twice")
	// ErrUnexpectedLine reports a key = value entry outside any group.
	ErrUnexpectedLine = errors.New("unexpected line in config")
	// ErrUnparsableLine reports a config line that is neither a header nor an entry.
	ErrUnparsableLine = errors.New("unparsable line in config")
	// ErrUnknownGroup reports a config group other than styles or formatting.
	ErrUnknownGroup = errors.New("unknown config group")
	// ErrUnknownSetting reports a key that no setting of its group reads.
	ErrUnknownSetting = errors.New("unknown setting")
	// ErrInvalidSetting reports a recognized key with a malformed value.
	ErrInvalidSetting = errors.New("invalid setting")
	// ErrUnknownStyle reports a style descriptor token outside the vocabulary.
	ErrUnknownStyle = errors.New("unknown style identifier")
	// ErrUnknownTheme reports a built-in theme name that does not exist.
	ErrUnknownTheme = errors.New("unknown theme")
	// ErrUnsupportedText reports a Text node of an unknown kind.
	ErrUnsupportedText = errors.New("unsupported text node")
)
