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


package score

import "strings"

// Format bonus values. The bonus is additive on top of the authority
// score (capped at 1.0 in the reliability composite), not a normalized
// signal of its own.
const (
	// PDFBonus rewards direct links to PDF documents, the strongest
	// primary-source hint a URL shape can give.
	PDFBonus = 0.20

	// AttachmentBonus rewards attachment/download/upload path segments
	// and file-reference query parameters.
	AttachmentBonus = 0.15
)

// attachmentHints are URL fragments suggesting a downloadable document.
var attachmentHints = []string{
	"/attachment/", "/attachments/", "/download/", "/downloads/",
	"/upload/", "/uploads/", "/uploadfiles/", "file=", "fileid=", "attachid=",
}

// FormatBonusScorer rewards URL shapes indicative of primary-source
// documents.
type FormatBonusScorer struct{}

// NewFormatBonusScorer creates a format bonus scorer.
func NewFormatBonusScorer() *FormatBonusScorer {
	return &FormatBonusScorer{}
}

// Score returns the additive bonus for a link: PDFBonus for direct .pdf
// paths, AttachmentBonus for download-shaped URLs, 0 otherwise.
func (s *FormatBonusScorer) Score(link string) float64 {
	link = strings.ToLower(link)

	path := link
	if i := strings.IndexByte(link, '?'); i >= 0 {
		path = link[:i]
	}
	if strings.HasSuffix(path, ".pdf") {
		return PDFBonus
	}

	for _, hint := range attachmentHints {
		if strings.Contains(link, hint) {
			return AttachmentBonus
		}
	}

	return 0.0
}
