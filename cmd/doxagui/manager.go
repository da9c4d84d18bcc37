package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"strings"
	"time"
)

// Manager supervises the doxa server process: starts it when not already
// running, waits for readiness, then hands the UI its address.
type Manager struct {
	logFunc    func(string)
	appFunc    func(string)
	serverCmd  *exec.Cmd
	serverAddr string
}

func NewManager(log, app func(string), serverAddr string) *Manager {
	return &Manager{logFunc: log, appFunc: app, serverAddr: serverAddr}
}

func (m *Manager) log(msg string) {
	if m.logFunc != nil {
		m.logFunc(msg)
	}
}

// Stop asks the server to shut down, but only if this GUI started it.
func (m *Manager) Stop() {
	if m.serverCmd == nil || m.serverCmd.Process == nil {
		return
	}
	fmt.Println("> Doxa GUI closing: Sending shutdown signal to server...")

	url := fmt.Sprintf("http://%s/api/shutdown", m.resolveAddr())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client := &http.Client{Timeout: 2 * time.Second}
	req, _ := http.NewRequestWithContext(ctx, "POST", url, http.NoBody)
	resp, err := client.Do(req)
	if err == nil {
		fmt.Println("> Shutdown command sent successfully.")
		resp.Body.Close()
		time.Sleep(500 * time.Millisecond)
	} else {
		fmt.Printf("> API shutdown failed: %v\n", err)
	}
}

func (m *Manager) Start() {
	go func() {
		if !m.isServerRunning() {
			m.log("> Server not running. Starting doxa...")
			go m.runServer()
		} else {
			m.log("> Server already active.")
		}

		m.log("> Waiting for server...")
		for i := 0; i < 30; i++ {
			if m.isServerReady() {
				m.log("> Server ready!")
				m.appFunc(fmt.Sprintf("http://%s", m.serverAddr))
				return
			}
			time.Sleep(1 * time.Second)
		}
		m.log("> Error: Server timed out.")
	}()
}

func (m *Manager) runServer() {
	cmd := exec.Command("doxa")
	m.serverCmd = cmd

	stdout, _ := cmd.StdoutPipe()
	stderr, _ := cmd.StderrPipe()

	if err := cmd.Start(); err != nil {
		m.log(fmt.Sprintf("Failed to start server: %v", err))
		return
	}

	go m.streamReader(stdout)
	go m.streamReader(stderr)

	if err := cmd.Wait(); err != nil {
		m.log(fmt.Sprintf("Server exited with error: %v", err))
	}
}

func (m *Manager) streamReader(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		m.log(scanner.Text())
	}
}

func (m *Manager) resolveAddr() string {
	addr := m.serverAddr
	if strings.HasPrefix(addr, ":") {
		return "127.0.0.1" + addr
	}
	if strings.HasPrefix(addr, "localhost:") {
		return strings.Replace(addr, "localhost:", "127.0.0.1:", 1)
	}
	return addr
}

func (m *Manager) isServerRunning() bool {
	client := http.Client{Timeout: 1 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://%s/api/version", m.serverAddr))
	if err == nil {
		resp.Body.Close()
		return true
	}
	return false
}

func (m *Manager) isServerReady() bool {
	client := http.Client{Timeout: 1 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://%s/api/version", m.serverAddr))
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == 200
}
