// Copyright 2025 Poiesic Systems
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


package openai

import (
	"encoding/json"
	"strings"
)

// stripCodeFences removes surrounding markdown code fences, which models
// emit even when told not to.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// extractJSONArray finds the first well-formed JSON array fragment in s,
// tolerating surrounding prose. Returns false if no parseable array
// exists.
func extractJSONArray(s string) (string, bool) {
	for start := 0; start < len(s); start++ {
		if s[start] != '[' {
			continue
		}

		end, ok := matchBracket(s, start)
		if !ok {
			continue
		}

		fragment := s[start : end+1]
		var probe []json.RawMessage
		if json.Unmarshal([]byte(fragment), &probe) == nil {
			return fragment, true
		}
	}

	return "", false
}

// matchBracket returns the index of the ']' closing the '[' at start,
// tracking nesting and JSON string escapes.
func matchBracket(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		ch := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}

	return 0, false
}
