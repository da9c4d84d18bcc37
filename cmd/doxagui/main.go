package main

import (
	"encoding/json"
	"net"
	"net/http"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	webview "github.com/webview/webview_go"

	"doxa/pkg/config"
)

func main() {
	// Webview requires main thread
	runtime.LockOSThread()

	cfg, err := config.Load(filepath.Join(xdg.ConfigHome, "doxa", "doxa.yaml"))
	if err != nil {
		panic(err)
	}

	w := webview.New(true)
	defer w.Destroy()

	// Block context menu via injection
	w.Init(`
		window.addEventListener('contextmenu', function(e) {
			e.preventDefault();
		}, true); // Use capture phase
	`)

	w.SetTitle("Doxa")
	w.SetSize(1024, 768, webview.HintNone)

	logProxy := func(msg string) {
		w.Dispatch(func() {
			w.Eval("window.addLogLine(" + escapeJS(msg) + ")")
		})
	}
	appProxy := func(url string) {
		w.Dispatch(func() {
			w.Eval("window.enableApp(" + escapeJS(url) + ")")
		})
	}

	mgr := NewManager(logProxy, appProxy, cfg.Server.Address)
	defer mgr.Stop()

	// Serve the loading shell from a loopback listener; navigating to a
	// data: URL breaks webview bindings on some platforms.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		panic(err)
	}
	defer ln.Close()

	go func() {
		if err := http.Serve(ln, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(htmlContent))
		})); err != nil {
			panic(err)
		}
	}()

	w.Navigate("http://" + ln.Addr().String())

	mgr.Start()

	w.Run()
}

func escapeJS(s string) string {
	b, _ := json.Marshal(s)
	// json.Marshal returns "string", surrounding quotes included.
	return string(b)
}
