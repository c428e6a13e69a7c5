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

package corefmt

import (
	"bytes"
	"strings"
	"testing"
)

func Test_Base64URLRoundTrip(t *testing.T) {
	src := []byte{0x00, 0xff, 0x10, 0xfb, 0x7e, 0x3d}
	enc := EncodeBase64URL(src)

	// URL 安全：不得出現 '+' '/' 與 padding
	if strings.ContainsAny(enc, "+/=") {
		t.Fatalf("encoded snap is not url-safe: %q", enc)
	}

	got, err := DecodeBase64URL(enc)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !bytes.Equal(got, src) {
		t.Fatalf("round trip mismatch: %v != %v", got, src)
	}
}

func Test_Base64URLDecodeRejectsGarbage(t *testing.T) {
	if _, err := DecodeBase64URL("not base64url!!"); err == nil {
		t.Fatalf("garbage input should fail to decode")
	}
}
