// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package httperr

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/zintix-labs/minireel/errs"
)

func Test_StatusCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"canceled", context.Canceled, http.StatusRequestTimeout},
		{"wrapped deadline", fmt.Errorf("outer: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"spin in progress", errs.NewCode(errs.CodeSpinInProgress, errs.Warn, "spinning"), http.StatusConflict},
		{"insufficient credits", errs.NewCode(errs.CodeInsufficientCredits, errs.Warn, "broke"), http.StatusBadRequest},
		{"not settled", errs.NewCode(errs.CodeNotSettled, errs.Fatal, "moving"), http.StatusInternalServerError},
		{"plain warn", errs.NewWarn("bad input"), http.StatusBadRequest},
		{"plain fatal", errs.NewFatal("boom"), http.StatusInternalServerError},
		{"unknown error", fmt.Errorf("mystery"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		if got := StatusCode(c.err); got != c.want {
			t.Fatalf("%s: status = %d, want %d", c.name, got, c.want)
		}
	}
}

func Test_WrapPreservesMapping(t *testing.T) {
	inner := errs.NewCode(errs.CodeSpinInProgress, errs.Warn, "spinning")
	wrapped := errs.Wrap(inner, "handler")
	if got := StatusCode(wrapped); got != http.StatusConflict {
		t.Fatalf("wrapped spin_in_progress = %d, want 409", got)
	}
}
