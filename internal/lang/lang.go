// Package lang holds the per-language configuration the chat and search
// pipeline branch on: keyword sets for intent detection, query rewrite
// rules, stopwords and all user-facing strings. Keeping everything in one
// table avoids the Bulgarian/English lists drifting apart across the
// classifier, the query constructor and the orchestrators.
package lang

import "strings"

// Tag is a two-letter language tag. Only "bg" and "en" are recognised.
type Tag string

const (
	Bulgarian Tag = "bg"
	English   Tag = "en"
)

// Normalize maps an arbitrary client-supplied language value onto a
// recognised tag, defaulting to English.
func Normalize(s string) Tag {
	if Tag(strings.ToLower(strings.TrimSpace(s))) == Bulgarian {
		return Bulgarian
	}
	return English
}

// Detect classifies a message as Bulgarian when it contains any Cyrillic
// character, English otherwise. Deliberately crude: it mirrors the
// behaviour the rest of the pipeline was tuned against and is cheap enough
// to run on every message.
func Detect(message string) Tag {
	for _, r := range strings.ToLower(message) {
		if (r >= 'а' && r <= 'я') || r == 'ё' {
			return Bulgarian
		}
	}
	return English
}

// QueryRule rewrites a vague query into a provider-friendly keyword set.
// Triggers are matched as substrings of the lower-cased query, in order;
// the first rule that fires wins.
type QueryRule struct {
	Triggers []string
	Rewrite  string
}

// Messages holds every localized user-facing string and prompt template.
type Messages struct {
	GenericError     string
	CasualError      string
	AnalysisError    string
	WebSearchError   string
	NothingToAnalyze string
	NoResults        string // verb: query
	ReadFullArticle  string // verbs: title, url
	SourceLine       string // verbs: source, reliability
	LinkDisclaimer   string
	HistoryIntro     string // verb: rendered history block
	CasualPrompt     string // verbs: history section (may be empty), message
	AnalysisPrompt   string // verbs: title, body, user request
	SelectPrompt     string // verbs: query, numbered listing
	RankPrompt       string // verbs: query, numbered listing
	WebSearchPrompt  string // verbs: message, formatted results
}

// Pack bundles the language-dependent behaviour for one tag.
type Pack struct {
	Tag                 Tag
	CasualGreetings     []string
	AnalysisKeywords    []string
	WebSearchKeywords   []string
	PriorityWebPatterns []string
	// QueryRules fully replace the query. Languages without rules fall
	// through to the quoted-phrase heuristics below.
	QueryRules []QueryRule
	// Stopwords drive the keyword-extraction fallback when no rule fires.
	Stopwords []string
	// SuffixRules append a topical suffix to the quoted original query.
	SuffixRules   []QueryRule
	DefaultSuffix string
	Messages      Messages
}

// For returns the pack for a tag, defaulting to English.
func For(tag Tag) *Pack {
	if p, ok := packs[tag]; ok {
		return p
	}
	return packs[English]
}

var packs = map[Tag]*Pack{
	Bulgarian: {
		Tag: Bulgarian,
		CasualGreetings: []string{
			"здравей", "здрасти", "добро утро", "добър ден", "добър вечер",
			"как си", "как става", "привет", "хей", "ало",
		},
		AnalysisKeywords: []string{
			"анализирай", "статия", "статията", "резюме", "резюмирай",
			"обобщи", "какво казва", "разкажи за", "обясни статията",
		},
		WebSearchKeywords: []string{
			"търси", "намери", "какво се случва", "новини за", "информация за",
			"кажи ми за", "какво има ново", "статии от интернет",
			"статии от мрежата", "статии от уеб", "линкове към", "връзки към",
			"интернет статии", "уеб статии", "дай ми статии", "покажи ми статии",
			"интернет", "в интернет", "от интернет", "какво пише в интернет",
			"с линкове", "линкове", "статии с линкове", "дай ми 3 статии",
			"дай ми три статии", "3 статии", "три статии", "статии на тема",
			"искам статии", "дай ми още", "още статии", "дай ми една статия",
			"дай ми 1 статия", "с линк", "статията", "статии за",
		},
		PriorityWebPatterns: []string{
			"от интернет", "в интернет", "статии от", "с линкове", "линкове към",
			"дай ми статии", "покажи ми статии", "статии с линкове",
			"дай ми 3 статии", "дай ми три статии", "искам статии",
			"искам 3 статии", "статии на тема",
		},
		QueryRules: []QueryRule{
			{Triggers: []string{"личен бюджет", "personal budget", "бюджет"},
				Rewrite: "личен бюджет планиране спестявания семеен домакинство финанси България"},
			{Triggers: []string{"личните финанси", "лични финанси", "финансова грамотност", "финанси"},
				Rewrite: "лични финанси финансова грамотност обучение курсове съвети управление пари България"},
			{Triggers: []string{"мачове", "футбол", "спорт", "matches", "football", "sports"},
				Rewrite: "мачове футбол спорт днес резултати програма България"},
			{Triggers: []string{"минимализ", "minimalism"},
				Rewrite: "минимализъм стил живот съвети"},
			{Triggers: []string{"психично здраве", "mental health"},
				Rewrite: "психично здраве благополучие стрес тревожност България"},
			{Triggers: []string{"технологи", "technology"},
				Rewrite: "технологии иновации България IT софтуер стартъп"},
			{Triggers: []string{"инвестиции", "investment"},
				Rewrite: "инвестиции акции облигации фондове портфейл България български"},
			{Triggers: []string{"кредит", "заем"},
				Rewrite: "кредити заеми банки лихви ипотека България български"},
			{Triggers: []string{"пенсия", "pension"},
				Rewrite: "пенсия осигуряване НОИ България пенсионни фондове"},
			{Triggers: []string{"здраве", "health"},
				Rewrite: "здраве медицина профилактика лечение България здравеопазване"},
			{Triggers: []string{"sport"},
				Rewrite: "спорт фитнес тренировки България спортисти състезания"},
		},
		Stopwords: []string{
			"дай", "ми", "моля", "те", "от", "интернет", "в", "за", "с",
			"линкове", "статии", "информация", "търси", "намери", "покажи", "кажи",
		},
		Messages: Messages{
			GenericError:     "За съжаление възникна грешка при обработване на заявката.",
			CasualError:      "Извинявай, възникна грешка. Можем ли да опитаме отново?",
			AnalysisError:    "Възникна грешка при анализ на статията.",
			WebSearchError:   "Възникна грешка при търсенето в интернет.",
			NothingToAnalyze: "Не намерих статии за анализ в момента.",
			NoResults:        "Не намерих актуални резултати за вашата заявка '%s'. Моля, опитайте с други ключови думи.",
			ReadFullArticle:  "\n\n**Прочетете пълната статия:** [%s](%s)",
			SourceLine:       "*Източник: %s (Надеждност: %s)*",
			LinkDisclaimer:   "\n\n*Всички връзки водят към действителни статии от интернет.*",
			HistoryIntro:     "Ето предишния разговор:\n%s\n\n",
			CasualPrompt:     "Ти си приятелски ChatBot на български език за новинарски сайт. %sПотребителят каза: '%s'. Отговори естествено и приятелски, като помниш контекста на разговора.",
			AnalysisPrompt:   "Анализирай следната статия и дай кратко резюме на български език:\n\nЗаглавие: %s\nСъдържание: %s\n\nМолбата на потребителя: %s",
			SelectPrompt:     "Коя от следните статии е най-подходяща за заявката '%s'? Отговори САМО с номера (например: 3). Статии:\n\n%s",
			RankPrompt:       "Подреди следните статии по релевантност към заявката '%s'. Отговори само с номерата, разделени със запетая:\n\n%s",
			WebSearchPrompt:  "На базата на следните резултати от търсене, отговори на въпроса: '%s'\n\nРезултати:\n%s\n\nДай кратък и информативен отговор на български език. ВАЖНО: Използвай само действителните връзки (URL адреси) от резултатите по-горе. НЕ създавай примерни или фиктивни връзки.",
		},
	},
	English: {
		Tag: English,
		CasualGreetings: []string{
			"hello", "hi", "hey", "good morning", "good afternoon",
			"good evening", "how are you", "what's up",
		},
		AnalysisKeywords: []string{
			"analyze", "article", "summary", "summarize", "explain", "tell me about",
		},
		WebSearchKeywords: []string{
			"search", "find", "what's happening", "news about", "information about",
			"tell me about", "what's new", "articles from the web", "web articles",
			"internet articles", "articles from internet", "links to", "with links",
			"give me articles", "show me articles", "articles with links",
			"from the web", "from internet", "give me", "show me", "internet",
			"on the internet", "articles about", "5 articles", "articles", "links",
			"provide me", "give me 3", "give me more", "more articles",
			"give me one article", "give me 1 article", "with link", "article",
			"articles for",
		},
		PriorityWebPatterns: []string{
			"from the web", "from internet", "articles from", "with links",
			"give me articles", "show me articles", "articles about",
			"provide me", "give me 3", "3 articles",
		},
		SuffixRules: []QueryRule{
			{Triggers: []string{"budget", "personal finance"},
				Rewrite: "personal finance budgeting money management household"},
			{Triggers: []string{"investment", "investing"},
				Rewrite: "investing stocks bonds portfolio strategy advice"},
		},
		DefaultSuffix: "guide tips how to tutorial advice complete",
		Messages: Messages{
			GenericError:     "Sorry, an error occurred while processing your request.",
			CasualError:      "Sorry, an error occurred. Can we try again?",
			AnalysisError:    "An error occurred while analyzing the article.",
			WebSearchError:   "An error occurred while searching the web.",
			NothingToAnalyze: "I couldn't find any articles to analyze at the moment.",
			NoResults:        "I couldn't find current results for your query '%s'. Please try with different keywords.",
			ReadFullArticle:  "\n\n**Read the full article:** [%s](%s)",
			SourceLine:       "*Source: %s (Reliability: %s)*",
			LinkDisclaimer:   "\n\n*All links lead to actual articles from the internet.*",
			HistoryIntro:     "Here's the previous conversation:\n%s\n\n",
			CasualPrompt:     "You are a friendly ChatBot in English for a news website. %sThe user said: '%s'. Reply naturally and friendly, remembering the conversation context.",
			AnalysisPrompt:   "Analyze the following article and provide a brief summary in English:\n\nTitle: %s\nContent: %s\n\nUser request: %s",
			SelectPrompt:     "Which of the following articles is most suitable for the query '%s'? Answer ONLY with the number (example: 3). Articles:\n\n%s",
			RankPrompt:       "Rank the following articles by relevance to the query '%s'. Respond only with numbers separated by commas:\n\n%s",
			WebSearchPrompt:  "Based on the following search results, answer the question: '%s'\n\nResults:\n%s\n\nProvide a brief and informative answer in English. IMPORTANT: Use only the actual links (URLs) from the results above. DO NOT create placeholder or example links.",
		},
	},
}
