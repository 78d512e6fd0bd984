package vite

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	esbuild "github.com/evanw/esbuild/pkg/api"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/mrrizkin/vite-plugin-backend/pkg"
	"github.com/mrrizkin/vite-plugin-backend/utils"
)

// reloadBanner is injected into served bundles. The provisional origin is
// rewritten to the real dev-server URL by the serve transform.
var reloadBanner = `new WebSocket("` + pkg.PlaceholderOrigin + `/ws".replace(/^http/, "ws")).onmessage = (e) => { if (e.data === "reload") location.reload(); };`

// TransformServe substitutes every occurrence of the provisional origin token
// with the resolved dev-server URL, then hands the result to the user
// transform hook. Outside serve mode it returns the code untouched.
func (p *Plugin) TransformServe(code string) (string, error) {
	if p.mode != modeServe {
		return code, nil
	}
	url, err := p.lifecycle.URL()
	if err != nil {
		return "", err
	}
	code = strings.ReplaceAll(code, pkg.PlaceholderOrigin, url)
	return p.Config.TransformOnServe(code, url), nil
}

// DevServer serves in-memory build output for one plugin instance.
type DevServer struct {
	plugin *Plugin
	reload *Reload
	server pkg.ServerConfig

	mu     sync.RWMutex
	assets map[string][]byte
}

// Serve runs the dev server until the context is cancelled. The hot file
// exists for exactly as long as the socket is accepting connections.
func (p *Plugin) Serve(ctx context.Context, addr string) error {
	p.mode = modeServe

	env, err := pkg.ResolveEnvServerConfig(pkg.OSEnviron())
	if err != nil {
		return err
	}
	server := pkg.MergeServerConfig(p.Config.Server, env)

	if addr == "" {
		addr = "127.0.0.1:5173"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("binding dev server: %w", err)
	}

	p.lifecycle.RegisterExitHandlers()

	// An explicit user origin is used verbatim; otherwise the URL comes from
	// the bound socket and the merged server configuration.
	url := server.Origin
	if url == pkg.PlaceholderOrigin {
		url = pkg.ResolveDevServerURL(pkg.AddrInfoFromAddr(ln.Addr()), server)
	}
	if err := p.lifecycle.Listening(url); err != nil {
		ln.Close()
		return err
	}
	defer p.lifecycle.Teardown()

	ds := &DevServer{
		plugin: p,
		reload: newReload(p.Logger),
		server: server,
		assets: make(map[string][]byte),
	}
	if err := ds.rebuild(); err != nil {
		ln.Close()
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.CORS())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			// Compression breaks the websocket upgrade.
			return c.Request().URL.Path == "/ws"
		},
	}))
	ds.routes(e)

	if server.HTTPS != nil {
		certificate, err := tls.X509KeyPair(server.HTTPS.Cert, server.HTTPS.Key)
		if err != nil {
			ln.Close()
			return fmt.Errorf("loading dev-server certificate: %w", err)
		}
		ln = tls.NewListener(ln, &tls.Config{Certificates: []tls.Certificate{certificate}})
	}

	srv := &http.Server{Handler: e}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return p.watch(gctx, func(path string) {
			p.Logger.Info().Str("file", path).Msg("Detected change, reloading clients")
			if err := ds.rebuild(); err != nil {
				p.Logger.Err(err).Msg("Rebuild failed")
				return
			}
			ds.reload.Broadcast("reload")
		})
	})
	g.Go(func() error {
		<-gctx.Done()
		srv.Close()
		return nil
	})
	return g.Wait()
}

// rebuild runs an in-memory build and stores the transformed output, keyed by
// request path.
func (d *DevServer) rebuild() error {
	p := d.plugin

	in := pkg.BuildInput{
		Entries:   p.Config.Input,
		PublicDir: p.Config.PublicDirectory,
		BuildDir:  p.Config.BuildDirectory,
		AssetURL:  os.Getenv(pkg.EnvAssetURL),
		Serve:     true,
	}
	opts := pkg.MergeBuildOptions(in, p.Config.BuildOptions)
	if !d.server.NoHMR {
		banner := make(map[string]string, len(opts.Banner)+1)
		for k, v := range opts.Banner {
			banner[k] = v
		}
		if _, ok := banner["js"]; !ok {
			banner["js"] = reloadBanner
		}
		opts.Banner = banner
	}

	result := esbuild.Build(opts)
	if len(result.Errors) > 0 {
		return fmt.Errorf("build error: %v", result.Errors[0].Text)
	}

	outBase, err := filepath.Abs(opts.Outdir)
	if err != nil {
		return err
	}
	assets := make(map[string][]byte, len(result.OutputFiles))
	for _, file := range result.OutputFiles {
		rel, err := filepath.Rel(outBase, file.Path)
		if err != nil {
			rel = filepath.Base(file.Path)
		}
		content := file.Contents
		if isTextOutput(rel) {
			code, err := p.TransformServe(string(content))
			if err != nil {
				return err
			}
			content = []byte(code)
		}
		assets["/"+filepath.ToSlash(rel)] = content
	}

	d.mu.Lock()
	d.assets = assets
	d.mu.Unlock()
	return nil
}

func isTextOutput(path string) bool {
	switch filepath.Ext(path) {
	case ".js", ".css", ".map", ".html", ".txt":
		return true
	}
	return false
}

func (d *DevServer) routes(e *echo.Echo) {
	p := d.plugin

	if !d.server.NoHMR {
		e.GET("/ws", d.reload.Handler())
	}

	// The backend application owns page rendering; the bundler's default
	// index is answered with a 404 and a pointer at the application.
	fallback := func(c echo.Context) error {
		page, err := pkg.FallbackPage(os.Getenv(pkg.EnvAppURL))
		if err != nil {
			return c.NoContent(http.StatusNotFound)
		}
		return c.HTML(http.StatusNotFound, page)
	}
	e.GET("/", fallback)
	e.GET("/index.html", fallback)

	e.GET("/*", func(c echo.Context) error {
		path := c.Request().URL.Path

		d.mu.RLock()
		content, ok := d.assets[path]
		d.mu.RUnlock()
		if ok {
			ctype := mime.TypeByExtension(filepath.Ext(path))
			if ctype == "" {
				ctype = echo.MIMEOctetStream
			}
			return c.Blob(http.StatusOK, ctype, content)
		}

		file := filepath.Join(p.Config.PublicDirectory, filepath.Clean("/"+path))
		if utils.IsFileExist(file) == nil {
			return c.File(file)
		}
		return c.NoContent(http.StatusNotFound)
	})
}
