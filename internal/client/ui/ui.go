// Package ui holds the side effects the client core triggers on its host:
// route changes and toast notifications.
package ui

import (
	"fmt"
	"io"
	"sync"
)

const (
	RouteHome           = "/"
	RouteAdmin          = "/admin"
	RouteLogin          = "/login"
	RouteBookingHistory = "/profile/bookings"
)

type Navigator interface {
	Navigate(route string)
}

type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Console prints navigation and notifications for terminal hosts.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Navigate(route string) {
	c.printf("-> %s\n", route)
}

func (c *Console) Success(msg string) {
	c.printf("[ok] %s\n", msg)
}

func (c *Console) Error(msg string) {
	c.printf("[error] %s\n", msg)
}

func (c *Console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, format, args...)
}

type Toast struct {
	Level   string
	Message string
}

// Recorder keeps every side effect in memory for headless hosts.
type Recorder struct {
	mu     sync.Mutex
	routes []string
	toasts []Toast
}

func (r *Recorder) Navigate(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

func (r *Recorder) Success(msg string) {
	r.toast("success", msg)
}

func (r *Recorder) Error(msg string) {
	r.toast("error", msg)
}

func (r *Recorder) toast(level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, Toast{Level: level, Message: msg})
}

func (r *Recorder) Routes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.routes...)
}

// LastRoute returns the most recent navigation, or "" when none.
func (r *Recorder) LastRoute() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.routes) == 0 {
		return ""
	}
	return r.routes[len(r.routes)-1]
}

func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}
