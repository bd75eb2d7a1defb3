// Package editor provides the filesystem-backed navigation shim the
// dapview binary ships. It resolves file URLs against a workspace root,
// verifies the file exists, and reports navigation and highlight requests
// through the structured log. A front-end embedding the coordinator swaps
// in its own text-editor adapter behind the same interfaces.
package editor

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/dapview/dapview/internal/nav"
)

// Navigator implements nav.Navigator over the local filesystem.
type Navigator struct {
	log       *zap.Logger
	workspace string
}

// NewNavigator creates a navigator rooted at workspace. Relative locations
// resolve against it; an empty workspace means the current directory.
func NewNavigator(workspace string, log *zap.Logger) *Navigator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Navigator{log: log, workspace: workspace}
}

// ResolveLocation maps a file:// URL or a plain path to an absolute local
// path. Locations that do not point at an existing regular file do not
// resolve.
func (n *Navigator) ResolveLocation(location string) (string, bool) {
	path := location
	if strings.Contains(location, "://") {
		u, err := url.Parse(location)
		if err != nil || u.Scheme != "file" {
			return "", false
		}
		path = u.Path
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(n.workspace, path)
	}
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return path, true
}

// OpenSource opens a view on the source at path.
func (n *Navigator) OpenSource(path string) (nav.Source, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open source %s: %w", path, err)
	}
	n.log.Debug("source opened", zap.String("path", path))
	return &view{path: path}, nil
}

// NavigateTo positions the caret in the view.
func (n *Navigator) NavigateTo(src nav.Source, line int) {
	n.log.Info("navigate",
		zap.String("path", src.Path()),
		zap.Int("line", line))
}

// HighlightLine marks a line in the view and returns its disposer.
func (n *Navigator) HighlightLine(src nav.Source, line int) nav.Highlight {
	n.log.Info("highlight line",
		zap.String("path", src.Path()),
		zap.Int("line", line))
	return &lineMark{log: n.log, path: src.Path(), line: line}
}

type view struct {
	path string
}

func (v *view) Path() string { return v.path }

type lineMark struct {
	log  *zap.Logger
	path string
	line int
	once sync.Once
}

// Release clears the mark. Idempotent.
func (m *lineMark) Release() {
	m.once.Do(func() {
		m.log.Debug("highlight released",
			zap.String("path", m.path),
			zap.Int("line", m.line))
	})
}

// PinnedMessages implements nav.Notifier by logging pinned messages. It
// stands in for an editor's inline notification surface.
type PinnedMessages struct {
	log *zap.Logger
}

// NewPinnedMessages creates the logging notification shim.
func NewPinnedMessages(log *zap.Logger) *PinnedMessages {
	if log == nil {
		log = zap.NewNop()
	}
	return &PinnedMessages{log: log}
}

// ShowPinnedMessage displays message anchored at line in the view.
func (p *PinnedMessages) ShowPinnedMessage(message string, anchor nav.Source, line int) (nav.Notification, error) {
	p.log.Info("pinned message",
		zap.String("path", anchor.Path()),
		zap.Int("line", line),
		zap.String("message", message))
	return &pinnedMessage{log: p.log, path: anchor.Path()}, nil
}

type pinnedMessage struct {
	log  *zap.Logger
	path string
	once sync.Once
}

// Dismiss removes the pinned message. Idempotent.
func (m *pinnedMessage) Dismiss() {
	m.once.Do(func() {
		m.log.Debug("pinned message dismissed", zap.String("path", m.path))
	})
}
