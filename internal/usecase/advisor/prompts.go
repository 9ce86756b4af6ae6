package advisor

const recommendPrompt = `You are a senior Indian banking product specialist.
Task: From candidate cards, select the BEST up to 3 for the user and justify succinctly.

PROFILE (JSON):
%s

USER QUERY:
%s

CANDIDATES (JSON Lines):
%s

Hard constraints:
- If profile.bank is set, recommend only that bank's cards when available; if none, state and broaden.
- Respect profile.max_fee when present.
- Prefer cards aligned to profile.categories when present.

Output strictly in compact Markdown:
1. One-line need summary
2. Ranked list (1-3): **Card Name — Bank (Type)**, 1 short reason, 3-5 bullets of concrete perks, annual fee (₹), website link
3. If bank constraint had no matches, one sentence about fallback
Note: Use ONLY facts from the candidates. Do NOT add imaginary benefits.
`

const comparePrompt = `You are a banking product specialist.
Compare the two cards and advise which profile suits each.

USER QUERY:
%s

CARD A (JSON): %s
CARD B (JSON): %s

Write Markdown:
- Short overview (1-2 lines)
- Table: Annual fee, Reward type, Lounge/Fuel/Online/Dining, Milestone/Waiver, Foreign markup (if available)
- Bullet guidance: who should pick A vs B (income/CIBIL/spend)
- One-line verdict
Only use facts present in the inputs.
`

const smalltalkPrompt = `You are a warm, concise banking assistant. Reply in 2 lines or less and offer help with credit card advice.
User: %s`

const bankingQAPrompt = `You are a concise Indian banking expert.
Task: If the user asks 'what is X', define X clearly in 2-4 lines (not differences).
Use bold for key terms; add 2 bullets for key uses/features if relevant.
If the user asks for advice later, prompt for income, CIBIL, max fee, bank, categories.
Question: %s`

const webSummaryPrompt = `Summarize recent India-focused credit card info for the user query.
- Use trusted sources (issuer sites, RBI, reputed media).
- Return 4-6 concise bullets with bank/site names; include year if available.
- If no relevant sources found, say so briefly.

Query: %s

Sources:
%s`

var smalltalkReplies = map[string]string{
	"hello":  "Hey! 👋 How can I help you today?",
	"thanks": "Happy to help! Tell me your **income, CIBIL, max fee, bank** and **benefits** to get a shortlist.",
	"help":   "Share your **income (₹/month)**, **CIBIL**, **max fee**, preferred **bank**, and **benefits** (cashback / travel lounge / fuel / shopping / dining / groceries).",
}

var slotQuestions = map[string]string{
	"income":     "What's your **monthly income (₹)**?",
	"cibil":      "What's your **CIBIL score** (300-900)?",
	"max_fee":    "What's the **max annual fee (₹)** you're okay with?",
	"categories": "Which **benefits** matter? (cashback / travel lounge / fuel / shopping online / dining / groceries)",
	"bank":       "Any preferred **bank** (SBI/HDFC/ICICI/Axis/Kotak)?",
}

var slotChips = map[string][]string{
	"income":     {"₹25,000 / month", "₹60,000 / month", "₹1,00,000 / month"},
	"cibil":      {"CIBIL 650", "CIBIL 720", "CIBIL 800"},
	"max_fee":    {"Under ₹500", "Under ₹1000", "Under ₹3000"},
	"categories": {"cashback", "travel lounge", "fuel", "shopping online", "dining", "groceries"},
	"bank":       {"SBI", "HDFC", "ICICI", "Axis", "Kotak"},
}

var defaultSuggestions = []string{
	"Compare two cards", "Show low annual-fee cards", "Fuel benefits", "Cashback options",
}
