package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/policyrank/ai"
)

const verifyPromptTemplate = `你是一名资深的投研合规审计员。
分析下述搜索结果的标题和摘要，判定每一条与查询主题的相关性，并识别其是否为真正的【官方政策/监管规章原文】。

【查询】
%s

【判定标准】
- ORIGINAL (政策原文): 法律、办法、指引、实施细则、规则、监管通知。哪怕标题是"公告"，只要发布的是规章制度也算。
- SUMMARY_NEWS (转载/解读): 财经新闻、政策解读、摘要转述。
- NOISE (杂质): 公司招股书、年报、业绩公告、考证培训、系统登录、无关页面。

【待验证列表】
%s
【输出要求】
严格输出一个 JSON 数组，每个元素对应一条待验证结果：
[{"index": 1, "score": 0.95, "label": "ORIGINAL", "is_original": true, "status": "现行有效", "tag": "监管规章"}, ...]

- index: 待验证列表中的序号 (从 1 开始)
- score: 与查询的相关度，0 到 1 之间的小数
- label: ORIGINAL / SUMMARY_NEWS / NOISE 三者之一
- is_original: 是否为完整的官方原文
- status: 时效状态 (可留空)
- tag: 简短分类标签 (可留空)

不要输出 JSON 数组以外的任何内容。`

// buildVerifyPrompt renders the batched verification prompt for a query
// and its funnel survivors.
func buildVerifyPrompt(query string, items []ai.Item) string {
	var list strings.Builder
	for _, item := range items {
		fmt.Fprintf(&list, "%d. 标题: %s\n   摘要: %s\n\n", item.Index, item.Title, ai.Excerpt(item.Snippet))
	}
	return fmt.Sprintf(verifyPromptTemplate, query, list.String())
}
