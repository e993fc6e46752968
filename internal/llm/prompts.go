package llm

// Prompt is a fixed system prompt plus the prefix glued before the user's text.
type Prompt struct {
	System     string
	UserPrefix string
}

var actionPrompts = map[Action]Prompt{
	ActionAbout: {
		System:     "Ты эксперт по реферированию. Дай краткое описание статьи на русском языке: 1–2 абзаца, без списков и без формата поста. Только суть и основные идеи.",
		UserPrefix: "О чем эта статья? Кратко опиши:\n\n",
	},
	ActionTheses: {
		System:     "Ты эксперт по реферированию. Выдели ключевые тезисы статьи и выдай их в виде нумерованного или маркированного списка на русском языке. Без вступления, только тезисы.",
		UserPrefix: "Выдели ключевые тезисы статьи:\n\n",
	},
	ActionTelegram: {
		System:     "Ты редактор. Напиши короткий пост для Telegram на русском языке по материалам статьи: 1–3 абзаца, готовый к публикации. Без хештегов и лишних пометок, живой язык.",
		UserPrefix: "Напиши пост для Telegram по этой статье:\n\n",
	},
}

var translatePrompt = Prompt{
	System:     "Ты профессиональный переводчик. Переведи следующий текст с английского на русский язык, сохраняя структуру и стиль оригинала. Переведи только текст, без дополнительных комментариев.",
	UserPrefix: "Переведи на русский язык:\n\n",
}
