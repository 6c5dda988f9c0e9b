// Package browser drives a headless Chrome through go-rod to print HTML as PDF.
// The browser is launched (or attached to) on first use and reused until Shutdown.
package browser

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"
	"sync"

	"aidoc/internal/logging"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/cdp"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// Config holds browser configuration.
type Config struct {
	// Bin is the Chrome binary. Empty lets rod look one up or download it.
	Bin string `json:"bin"`

	// DebuggerURL attaches to a running Chrome instead of launching one.
	DebuggerURL string `json:"debugger_url"`

	// NoSandbox disables the Chrome sandbox.
	NoSandbox bool `json:"no_sandbox"`

	// Flags are extra Chrome switches, "name" or "name=value", leading dashes optional.
	Flags []string `json:"flags"`
}

// Printer owns the Chrome instance used for PDF rendering.
type Printer struct {
	cfg        Config
	logger     *zap.Logger
	mu         sync.Mutex
	browser    *rod.Browser
	ws         *cdp.WebSocket
	launch     *launcher.Launcher // nil when attached through DebuggerURL
	controlURL string
}

// NewPrinter creates a printer. Nothing is launched until the first PrintPDF.
func NewPrinter(cfg Config, logger *zap.Logger) *Printer {
	return &Printer{
		cfg:    cfg,
		logger: logging.For(logger, logging.CategoryBrowser),
	}
}

// newLauncher builds the rod launcher for cfg.
func newLauncher(cfg Config) *launcher.Launcher {
	l := launcher.New().Headless(true)
	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}
	if cfg.NoSandbox {
		l = l.NoSandbox(true)
	}
	for _, rawFlag := range cfg.Flags {
		flagStr := strings.TrimLeft(rawFlag, "-")
		if flagStr == "" {
			continue
		}
		name, val, hasVal := strings.Cut(flagStr, "=")
		if hasVal {
			l = l.Set(flags.Flag(name), val)
		} else {
			l = l.Set(flags.Flag(name))
		}
	}
	return l
}

// startLocked connects to an existing Chrome or launches a new one.
func (p *Printer) startLocked(ctx context.Context) error {
	// If we already have a browser, verify it's still alive
	if p.browser != nil {
		if _, err := p.browser.Version(); err == nil {
			return nil
		}
		p.logger.Warn("stale browser connection detected, reconnecting")
		p.closeLocked()
	}

	controlURL := p.cfg.DebuggerURL
	var l *launcher.Launcher
	if controlURL == "" {
		l = newLauncher(p.cfg)
		u, err := l.Launch()
		if err != nil {
			return fmt.Errorf("launch chrome: %w", err)
		}
		controlURL = u
	}

	// Own the websocket so an attached browser can be disconnected without closing it.
	dialer := newConnDialer(controlURL)
	ws := &cdp.WebSocket{Dialer: dialer}
	if err := ws.Connect(ctx, dialer.url, nil); err != nil {
		dialer.close()
		if l != nil {
			l.Kill()
		}
		return fmt.Errorf("connect to chrome: %w", err)
	}

	b := rod.New().Client(cdp.New().Start(ws))
	if err := b.Connect(); err != nil {
		_ = ws.Close()
		if l != nil {
			l.Kill()
		}
		return fmt.Errorf("connect to chrome: %w", err)
	}

	p.browser = b
	p.ws = ws
	p.launch = l
	p.controlURL = controlURL
	p.logger.Info("browser connected", zap.Bool("launched", l != nil))
	return nil
}

// ControlURL returns the WebSocket debugger URL, empty before the first print.
func (p *Printer) ControlURL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.controlURL
}

// IsConnected returns whether the browser is connected.
func (p *Printer) IsConnected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.browser != nil
}

// PrintPDF loads html into a fresh tab and prints it. Page size and margins come
// from the document's CSS @page rule; backgrounds are printed.
func (p *Printer) PrintPDF(ctx context.Context, html string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.startLocked(ctx); err != nil {
		return nil, err
	}
	if p.browser == nil {
		return nil, errors.New("browser not connected")
	}

	page, err := p.browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	defer func() {
		// The print context may be done already; close on a fresh one.
		_ = page.Context(context.Background()).Close()
	}()

	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait for document: %w", err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, fmt.Errorf("print to pdf: %w", err)
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read pdf stream: %w", err)
	}
	return data, nil
}

// Shutdown closes the browser and removes a launched instance's profile.
func (p *Printer) Shutdown() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeLocked()
}

func (p *Printer) closeLocked() error {
	var err error
	if p.browser != nil {
		// Attached browsers are left running; only our connection goes away.
		if p.launch != nil {
			err = p.browser.Close()
		}
		p.browser = nil
	}
	if p.ws != nil {
		_ = p.ws.Close()
		p.ws = nil
	}
	if p.launch != nil {
		p.launch.Cleanup()
		p.launch = nil
		p.logger.Info("browser shut down")
	}
	p.controlURL = ""
	return err
}

// connDialer remembers the connection it dialed so a failed handshake can be
// cleaned up; cdp.WebSocket.Close needs a live connection.
type connDialer struct {
	url   string
	inner cdp.Dialer
	conn  net.Conn
}

func newConnDialer(rawURL string) *connDialer {
	d := &connDialer{url: rawURL, inner: &net.Dialer{}}
	u, err := url.Parse(rawURL)
	if err == nil && u.Scheme == "wss" {
		d.inner = &tls.Dialer{}
		if u.Port() == "" {
			u.Host += ":443"
			d.url = u.String()
		}
	}
	return d
}

func (d *connDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	conn, err := d.inner.DialContext(ctx, network, address)
	if err == nil {
		d.conn = conn
	}
	return conn, err
}

func (d *connDialer) close() {
	if d.conn != nil {
		_ = d.conn.Close()
		d.conn = nil
	}
}
