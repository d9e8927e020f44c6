package prompt

import (
	"fmt"
	"strings"

	"survey-sensei-be/pkg/evidence"
	"survey-sensei-be/pkg/interview"
)

// QuestionBuilder builds the prompt for the next interview question. The
// generator sees both distilled contexts and the conversation so far, and
// must answer with a single JSON object.
type QuestionBuilder struct {
	productName string
	product     evidence.ProductContext
	customer    evidence.CustomerContext
	transcript  []interview.Entry
	forced      bool
}

func NewQuestionBuilder(
	productName string,
	product evidence.ProductContext,
	customer evidence.CustomerContext,
	transcript []interview.Entry,
	forced bool,
) *QuestionBuilder {
	return &QuestionBuilder{
		productName: productName,
		product:     product,
		customer:    customer,
		transcript:  transcript,
		forced:      forced,
	}
}

func (b *QuestionBuilder) Build() string {
	var prompt strings.Builder

	b.writeTask(&prompt)
	b.writeProductContext(&prompt)
	b.writeCustomerContext(&prompt)
	b.writeConversation(&prompt)
	b.writeOutputFormat(&prompt)

	return prompt.String()
}

func (b *QuestionBuilder) writeTask(prompt *strings.Builder) {
	prompt.WriteString("<task>\n")
	prompt.WriteString("You are interviewing a customer about their experience with the product \"")
	prompt.WriteString(b.productName)
	prompt.WriteString("\".\n")
	prompt.WriteString("Ask one focused question at a time. Prefer questions that probe the concerns and pain points below.\n")
	prompt.WriteString("Offer answer options when the question has a natural closed set; otherwise leave options empty for free text.\n")
	if b.forced {
		prompt.WriteString("You must ask another question now. Do not end the interview yet.\n")
	} else {
		prompt.WriteString("When the conversation has covered the important ground, end the interview instead of padding it.\n")
	}
	prompt.WriteString("</task>\n\n")
}

func (b *QuestionBuilder) writeProductContext(prompt *strings.Builder) {
	prompt.WriteString("<product_context>\n")
	writeList(prompt, "Key features", b.product.KeyFeatures)
	writeList(prompt, "Major concerns", b.product.MajorConcerns)
	writeList(prompt, "Pros", b.product.Pros)
	writeList(prompt, "Cons", b.product.Cons)
	writeList(prompt, "Common use cases", b.product.CommonUseCases)
	prompt.WriteString("</product_context>\n\n")
}

func (b *QuestionBuilder) writeCustomerContext(prompt *strings.Builder) {
	prompt.WriteString("<customer_context>\n")
	writeList(prompt, "Purchase patterns", b.customer.PurchasePatterns)
	writeList(prompt, "Expectations", b.customer.Expectations)
	writeList(prompt, "Primary concerns", b.customer.PrimaryConcerns)
	writeList(prompt, "Pain points", b.customer.PainPoints)
	prompt.WriteString("</customer_context>\n\n")
}

func (b *QuestionBuilder) writeConversation(prompt *strings.Builder) {
	prompt.WriteString("<conversation_so_far>\n")
	if len(b.transcript) == 0 {
		prompt.WriteString("No questions asked yet.\n")
	}
	for _, e := range b.transcript {
		fmt.Fprintf(prompt, "Q%d: %s\nA%d: %s\n", e.Number, e.Question.Text, e.Number, e.AnswerText())
	}
	prompt.WriteString("</conversation_so_far>\n\n")
}

func (b *QuestionBuilder) writeOutputFormat(prompt *strings.Builder) {
	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with a single JSON object and nothing else:\n")
	prompt.WriteString(`{"done": false, "question": {"text": "...", "options": ["..."], "allow_multiple": false, "reasoning": "..."}}`)
	prompt.WriteString("\n")
	prompt.WriteString(`Set "done" to true and omit "question" to end the interview.`)
	prompt.WriteString("\n</output_format>\n")
}

// ReviewBuilder builds the synthesis prompt. It asks for exactly three review
// drafts, one per tone, plus the model's overall sentiment read.
type ReviewBuilder struct {
	productName  string
	transcript   []interview.Entry
	priorReviews []string
	count        int
}

func NewReviewBuilder(productName string, transcript []interview.Entry, priorReviews []string, count int) *ReviewBuilder {
	return &ReviewBuilder{
		productName:  productName,
		transcript:   transcript,
		priorReviews: priorReviews,
		count:        count,
	}
}

func (b *ReviewBuilder) Build() string {
	var prompt strings.Builder

	prompt.WriteString("<task>\n")
	fmt.Fprintf(&prompt, "Draft %d customer reviews for the product \"%s\" based strictly on the interview below.\n", b.count, b.productName)
	prompt.WriteString("Write one review per tone: \"enthusiastic\", \"balanced\", \"critical\", in that order.\n")
	prompt.WriteString("All three must describe the same experience; only the framing and star rating differ.\n")
	prompt.WriteString("The enthusiastic rating must not be below the balanced one, and the balanced not below the critical one.\n")
	prompt.WriteString("Do not invent details the customer never mentioned. Skipped questions gave no information.\n")
	prompt.WriteString("</task>\n\n")

	prompt.WriteString("<interview>\n")
	for _, e := range b.transcript {
		fmt.Fprintf(&prompt, "Q%d: %s\nA%d: %s\n", e.Number, e.Question.Text, e.Number, e.AnswerText())
	}
	prompt.WriteString("</interview>\n\n")

	if len(b.priorReviews) > 0 {
		prompt.WriteString("<writing_style>\n")
		prompt.WriteString("Match the voice of this customer's earlier reviews:\n")
		for _, body := range b.priorReviews {
			prompt.WriteString("- ")
			prompt.WriteString(body)
			prompt.WriteString("\n")
		}
		prompt.WriteString("</writing_style>\n\n")
	}

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with a JSON object and nothing else:\n")
	prompt.WriteString(`{"sentiment_band": "good|okay|bad", "reviews": [{"tone": "enthusiastic", "title": "...", "body": "...", "highlights": ["..."], "stars": 5}, ...]}`)
	prompt.WriteString("\n")
	prompt.WriteString(`"sentiment_band" is your read of the customer's overall experience across the whole interview.`)
	prompt.WriteString("\n</output_format>\n")

	return prompt.String()
}

// ContextSummaryBuilder asks the model to distill ranked evidence into the
// structured context the question generator consumes. The same builder serves
// both sides of the interview; side is "product" or "customer".
type ContextSummaryBuilder struct {
	side        string
	subjectName string
	description string
	path        evidence.Path
	items       []evidence.Item
}

func NewContextSummaryBuilder(side, subjectName, description string, path evidence.Path, items []evidence.Item) *ContextSummaryBuilder {
	return &ContextSummaryBuilder{
		side:        side,
		subjectName: subjectName,
		description: description,
		path:        path,
		items:       items,
	}
}

func (b *ContextSummaryBuilder) Build() string {
	var prompt strings.Builder

	prompt.WriteString("<task>\n")
	fmt.Fprintf(&prompt, "Distill the evidence below into a %s profile for \"%s\".\n", b.side, b.subjectName)
	switch b.path {
	case evidence.PathAnalogous:
		prompt.WriteString("The reviews come from similar products, not this one. Generalize; do not attribute specifics.\n")
	case evidence.PathSparse:
		prompt.WriteString("No reviews exist. Work only from the description and keep every point generic.\n")
	}
	prompt.WriteString("Each list should hold short phrases, at most five per list. Leave a list empty rather than padding it.\n")
	prompt.WriteString("</task>\n\n")

	if b.description != "" {
		prompt.WriteString("<description>\n")
		prompt.WriteString(b.description)
		prompt.WriteString("\n</description>\n\n")
	}

	if len(b.items) > 0 {
		prompt.WriteString("<reviews>\n")
		for i, it := range b.items {
			fmt.Fprintf(&prompt, "Review %d (%d stars): %s\n%s\n\n", i+1, it.Stars, it.Title, it.Body)
		}
		prompt.WriteString("</reviews>\n\n")
	}

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with a single JSON object and nothing else:\n")
	if b.side == "customer" {
		prompt.WriteString(`{"purchase_patterns": [], "expectations": [], "primary_concerns": [], "pain_points": []}`)
	} else {
		prompt.WriteString(`{"key_features": [], "major_concerns": [], "pros": [], "cons": [], "common_use_cases": []}`)
	}
	prompt.WriteString("\n</output_format>\n")

	return prompt.String()
}

func writeList(prompt *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	prompt.WriteString(label)
	prompt.WriteString(":\n")
	for _, it := range items {
		prompt.WriteString("- ")
		prompt.WriteString(it)
		prompt.WriteString("\n")
	}
}
