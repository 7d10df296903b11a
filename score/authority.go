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

import (
	"strings"

	"github.com/poiesic/policyrank/core"
)

// AuthorityConfig holds the heuristic tables driving authority scoring.
// The tables are data, not code: tests inject synthetic tiers and
// deployments can swap keyword lists without touching the scorer.
type AuthorityConfig struct {
	// Tiers lists institution-name keywords from most to least
	// authoritative. A match in tier i (0-based) scores
	// max(FloorScore, 1.0 - i*TierStep).
	Tiers [][]string

	// TierStep is the per-tier score decrement. Default 0.125.
	TierStep float64

	// FloorScore is the score for unmatched or bottom-tier sources.
	// Default 0.3.
	FloorScore float64

	// GovDomains are government domain suffixes scoring GovScore.
	GovDomains []string
	GovScore   float64

	// AssociationDomains are registered-association suffixes scoring
	// AssociationScore, slightly below government.
	AssociationDomains []string
	AssociationScore   float64

	// ExchangeDomains are stock-exchange domains scoring ExchangeScore.
	ExchangeDomains []string
	ExchangeScore   float64

	// NewsDomains are news-outlet domains scoring NewsScore, deliberately
	// below the unmatched floor.
	NewsDomains []string
	NewsScore   float64

	// NoiseKeywords veto a candidate outright when found in its
	// title or snippet: login pages, exam portals, prospectuses,
	// periodic financial disclosures.
	NoiseKeywords []string

	// CriticalNoise is the subset of NoiseKeywords that vetoes even on
	// high-trust domains. The remaining (secondary) noise keywords are
	// exempt there, since official sites legitimately publish documents
	// whose titles brush against them.
	CriticalNoise []string

	// HighTrustDomains are suffixes where secondary noise is exempt.
	HighTrustDomains []string

	// LawPatterns are URL path fragments indicating regulation/rule
	// pages; a match adds LawBonus, capped at 1.0.
	LawPatterns []string
	LawBonus    float64

	// DisclosurePatterns are URL path fragments indicating disclosure,
	// prospectus, or announcement pages; a match overrides the score
	// down to DisclosureScore regardless of domain trust.
	DisclosurePatterns []string
	DisclosureScore    float64
}

// DefaultAuthorityConfig returns the reference tables for Chinese
// financial-policy sources.
func DefaultAuthorityConfig() *AuthorityConfig {
	return &AuthorityConfig{
		Tiers: [][]string{
			{"国务院", "中央", "全国人大", "国家发改委", "财政部"},
			{"证监会", "银保监会", "央行", "中国人民银行", "国家金融监督管理总局"},
			{"交易所", "上交所", "深交所", "北交所", "中登", "中国结算"},
			{"证券业协会", "基金业协会", "期货业协会"},
			{"地方金融局", "地方证监局"},
			{"券商", "证券公司", "银行", "保险公司"},
			{"财经媒体", "第一财经", "财新", "证券时报", "中国证券报"},
			{"门户网站", "新浪", "网易", "搜狐", "百度"},
		},
		TierStep:   0.125,
		FloorScore: 0.3,

		GovDomains: []string{".gov.cn"},
		GovScore:   0.9,

		AssociationDomains: []string{".org.cn"},
		AssociationScore:   0.85,

		ExchangeDomains: []string{"sse.com.cn", "szse.cn", "bse.cn"},
		ExchangeScore:   0.7,

		NewsDomains: []string{
			"eastmoney.com", "hexun.com", "10jqka.com.cn", "cnstock.com",
			"yicai.com", "caixin.com", "wallstreetcn.com", "cls.cn",
		},
		NewsScore: 0.1,

		NoiseKeywords: []string{
			"系统", "登录", "登入", "注册", "报考", "培训", "考试", "报名",
			"下载中心", "工作门户", "管理平台", "网上信息系统", "人员管理系统",
			"招股书", "招股说明书", "招募说明书", "中报", "年报", "季报",
			"上市公告书", "分红公告", "业绩快报",
		},
		CriticalNoise:    []string{"系统", "登录", "报考", "考试"},
		HighTrustDomains: []string{".gov.cn", ".org.cn"},

		LawPatterns: []string{
			"/law/", "/rule/", "/self_reg/", "/regulatory/", "/zcfg/", "/standard/",
		},
		LawBonus: 0.1,

		DisclosurePatterns: []string{
			"/disclosure/", "/listing/", "/announcement/", "/report/",
			"/prospectus/", "/static/",
		},
		DisclosureScore: 0.1,
	}
}

// AuthorityScorer classifies a candidate's institutional trustworthiness
// from its source label and URL. It is pure and safe for concurrent use.
type AuthorityScorer struct {
	cfg      *AuthorityConfig
	critical map[string]bool
}

// NewAuthorityScorer creates an authority scorer from the given tables.
func NewAuthorityScorer(cfg *AuthorityConfig) (*AuthorityScorer, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}
	if len(cfg.Tiers) == 0 {
		return nil, ErrNoTiers
	}

	critical := make(map[string]bool, len(cfg.CriticalNoise))
	for _, kw := range cfg.CriticalNoise {
		critical[strings.ToLower(kw)] = true
	}

	return &AuthorityScorer{cfg: cfg, critical: critical}, nil
}

// Score computes the authority score in [0,1]. A zero score means the
// candidate was classified as noise and is a veto signal downstream.
func (s *AuthorityScorer) Score(c *core.Candidate) float64 {
	link := strings.ToLower(c.Link)

	// Noise veto has the highest priority. High-trust domains are exempt
	// from secondary noise words only.
	text := strings.ToLower(c.Title + " " + c.Snippet)
	highTrust := containsAny(link, s.cfg.HighTrustDomains)
	for _, kw := range s.cfg.NoiseKeywords {
		lkw := strings.ToLower(kw)
		if !strings.Contains(text, lkw) {
			continue
		}
		if highTrust && !s.critical[lkw] {
			continue
		}
		return 0.0
	}

	// Domain-tier base score with URL path adjustment.
	base := 0.0
	switch {
	case containsAny(link, s.cfg.GovDomains):
		base = s.cfg.GovScore
	case containsAny(link, s.cfg.AssociationDomains):
		base = s.cfg.AssociationScore
	case containsAny(link, s.cfg.ExchangeDomains):
		base = s.cfg.ExchangeScore
	}
	if base > 0 {
		if containsAny(link, s.cfg.LawPatterns) {
			base = min(1.0, base+s.cfg.LawBonus)
		}
		// Disclosure documents are presumptively not policy originals,
		// whatever the domain says.
		if containsAny(link, s.cfg.DisclosurePatterns) {
			base = s.cfg.DisclosureScore
		}
		return base
	}

	// Keyword tiers over the source label and the link.
	combined := strings.ToLower(c.Source + " " + c.Link)
	for i, keywords := range s.cfg.Tiers {
		for _, kw := range keywords {
			if strings.Contains(combined, strings.ToLower(kw)) {
				return max(s.cfg.FloorScore, 1.0-float64(i)*s.cfg.TierStep)
			}
		}
	}

	if containsAny(link, s.cfg.NewsDomains) {
		return s.cfg.NewsScore
	}

	return s.cfg.FloorScore
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
