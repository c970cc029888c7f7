package prompt

import "fmt"

// CombinedCharBudget is the maximum combined length of the three generated
// bullet lines. Responses over budget are logged as a quality signal by the
// generator, not rejected.
const CombinedCharBudget = 600

const promptTemplate = `Based on the following campaign information, write a description that helps a salesperson understand this campaign at a glance.

Formatting rules:
- Respond with exactly three bullet lines and nothing else.
- Every line starts with "• " followed by that line's bracketed category label, exactly as written below.
- Keep the three lines under %d characters combined.
- Do not use semicolons or em dashes.
- Do not repeat raw field values or the campaign name verbatim.
- If a product interest is known, mention it.
- If a third-party vendor is involved, name the vendor instead of writing "a vendor".

Answer these three questions, one per line:
• [%s] %s
• [%s] %s
• [%s] %s

%s

Campaign Information:
%s`

// Build composes the full generation prompt from an enriched context string
// and the selected strategy. Pure string assembly, no I/O.
func Build(context string, s *Strategy) string {
	return fmt.Sprintf(promptTemplate,
		CombinedCharBudget,
		s.Labels[0], s.Questions[0],
		s.Labels[1], s.Questions[1],
		s.Labels[2], s.Questions[2],
		s.Framing,
		context,
	)
}
