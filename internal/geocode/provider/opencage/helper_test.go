// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package opencage

import (
	"io"
	"log/slog"
	stdhttp "net/http"
	"os"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/climate-app/climate/internal/http"
	"github.com/climate-app/climate/internal/logger"
	"github.com/climate-app/climate/internal/testhelper"
)

const (
	testHitTTL  = 1 * time.Second
	testMissTTL = 1 * time.Second
)

func testCoderWithRoundtripFunc(t *testing.T, apikey string, fn func(req *stdhttp.Request) (*stdhttp.Response, error)) *OpenCage {
	t.Helper()
	testHttpClient := http.New(logger.NewLogger(slog.LevelDebug, io.Discard), 0)
	testHttpClient.Transport = testhelper.MockRoundTripper{Fn: fn}
	return New(testHttpClient, logger.NewLogger(slog.LevelDebug, io.Discard), language.English, apikey)
}

func fileResponse(t *testing.T, status int, file string) func(req *stdhttp.Request) (*stdhttp.Response, error) {
	t.Helper()
	return func(req *stdhttp.Request) (*stdhttp.Response, error) {
		data, err := os.Open(file)
		if err != nil {
			t.Fatalf("failed to open JSON response file: %s", err)
		}
		return &stdhttp.Response{
			StatusCode: status,
			Body:       data,
			Header:     make(stdhttp.Header),
		}, nil
	}
}

func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}
