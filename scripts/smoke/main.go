package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type step struct {
	Name     string
	Status   int
	Want     int
	Message  string
	Duration time.Duration
	Err      error
}

func (s step) ok() bool {
	return s.Err == nil && s.Status == s.Want
}

type runner struct {
	client *http.Client
	base   string
	steps  []step
}

func main() {
	var (
		base     string
		timeout  time.Duration
		bagType  string
		sizeName string
	)
	flag.StringVar(&base, "base", "http://localhost:8080", "API base URL")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "HTTP client timeout")
	flag.StringVar(&bagType, "bag-type", "ring", "bag type used for the size round trip")
	flag.StringVar(&sizeName, "size", fmt.Sprintf("smoke-%d", time.Now().Unix()), "size name to add and remove")
	flag.Parse()

	r := &runner{client: &http.Client{Timeout: timeout}, base: strings.TrimRight(base, "/")}

	r.call("health", http.MethodGet, "/health", nil, http.StatusOK)

	var link struct {
		FormURL string `json:"form_url"`
		Token   string `json:"token"`
	}
	env := r.call("generate link", http.MethodPost, "/api/generate-link", map[string]string{"po_number": "SMOKE"}, http.StatusOK)
	if env == nil || json.Unmarshal(env.Data, &link) != nil || link.Token == "" {
		r.report()
		log.Fatal("no token returned, aborting")
	}

	r.page("open form", "/form/"+link.Token, http.StatusOK)
	submission := map[string]interface{}{
		"bags": []map[string]string{{
			"bag_type":      "ring",
			"tubesheet_dia": "300mm",
			"client_name":   "Smoke Test",
		}},
		"global_remarks": "automated smoke run",
	}
	r.call("submit", http.MethodPost, "/api/submit-form/"+link.Token, submission, http.StatusOK)
	r.call("resubmit rejected", http.MethodPost, "/api/submit-form/"+link.Token, submission, http.StatusNotFound)
	r.call("unknown token rejected", http.MethodPost, "/api/submit-form/does-not-exist", submission, http.StatusNotFound)

	var size struct {
		ID string `json:"id"`
	}
	env = r.call("add size", http.MethodPost, "/api/sizes", map[string]string{"size_name": sizeName, "bag_type": bagType}, http.StatusCreated)
	r.call("duplicate size rejected", http.MethodPost, "/api/sizes", map[string]string{"size_name": sizeName, "bag_type": bagType}, http.StatusConflict)
	r.call("list sizes", http.MethodGet, "/api/sizes/"+bagType, nil, http.StatusOK)
	if env != nil && json.Unmarshal(env.Data, &size) == nil && size.ID != "" {
		r.call("delete size", http.MethodDelete, "/api/sizes/"+size.ID, nil, http.StatusOK)
	}

	r.page("submissions page", "/submissions?po=SMOKE", http.StatusOK)
	r.page("csv export", "/submissions/export?format=csv", http.StatusOK)

	if failed := r.report(); failed > 0 {
		os.Exit(1)
	}
}

func (r *runner) call(name, method, path string, body interface{}, want int) *envelope {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			r.steps = append(r.steps, step{Name: name, Want: want, Err: err})
			return nil
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, r.base+path, reader)
	if err != nil {
		r.steps = append(r.steps, step{Name: name, Want: want, Err: err})
		return nil
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	s := step{Name: name, Want: want, Duration: time.Since(start), Err: err}
	if err != nil {
		r.steps = append(r.steps, s)
		return nil
	}
	defer resp.Body.Close()
	s.Status = resp.StatusCode

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err == nil {
		s.Message = env.Message
	}
	r.steps = append(r.steps, s)
	return &env
}

func (r *runner) page(name, path string, want int) {
	start := time.Now()
	resp, err := r.client.Get(r.base + path)
	s := step{Name: name, Want: want, Duration: time.Since(start), Err: err}
	if err == nil {
		s.Status = resp.StatusCode
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
	r.steps = append(r.steps, s)
}

func (r *runner) report() int {
	failed := 0
	fmt.Println("Smoke run against", r.base)
	for _, s := range r.steps {
		mark := "PASS"
		if !s.ok() {
			mark = "FAIL"
			failed++
		}
		line := fmt.Sprintf("[%s] %-26s status=%d want=%d (%s)", mark, s.Name, s.Status, s.Want, s.Duration.Truncate(time.Millisecond))
		if s.Message != "" {
			line += " " + s.Message
		}
		if s.Err != nil {
			line += " error=" + s.Err.Error()
		}
		fmt.Println(line)
	}
	fmt.Printf("%d steps, %d failed\n", len(r.steps), failed)
	return failed
}
