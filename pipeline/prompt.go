// ABOUTME: System instruction for the extraction stage
// ABOUTME: Embeds the output schema and the current date
package pipeline

import "fmt"

// ExtractionInstruction builds the system message for the extraction model.
// The memo should be a tidied summary, not a raw transcript; the date is
// embedded so relative phrases like "next Friday" resolve correctly.
func ExtractionInstruction(today string) string {
	return fmt.Sprintf(`あなたは優秀な現場秘書です。以下のテキストは現場での会話や独り言の録音です。
ここから「議事録」を作成するつもりで、以下の情報を抽出しJSON形式で返してください。

JSON構造:
{
  "clientName": "string (会社名や担当者名、プロジェクト名)",
  "memo": "string (議事録の本文。決定事項や確認事項を箇条書きなどで整理)",
  "dueDate": "YYYY-MM-DD (期限や次回予定があれば。なければ今日)",
  "importance": "高" | "中" | "低" (デフォルト: 中),
  "urgency": "高" | "中" | "低" (デフォルト: 中),
  "profit": "高" | "中" | "低" (デフォルト: 中),
  "assignmentType": "任せる" | "自分で" (デフォルト: 任せる),
  "assignee": "string (担当者名があれば)"
}

今日の日付は %s です。
本文(memo)は、ただの書き起こしではなく、要点をまとめた見やすい形式にしてください。`, today)
}
