package service

import (
	"context"
	"math/rand"
	"strings"
	"time"

	chatdomain "github.com/robmoran/proposalkit/internal/chat/domain"
)

// cannedRule matches any of its keywords against a lowercased prompt.
type cannedRule struct {
	keywords []string
	reply    string
}

var cannedRules = []cannedRule{
	{
		keywords: []string{"roof", "roofing"},
		reply:    "Great! I'll help you create a roofing proposal. Can you tell me the homeowner's name and property address?",
	},
	{
		keywords: []string{"photo", "image", "inspection"},
		reply:    "I can help you add site photos. Upload them here or describe what photos you need, and they'll appear in the photography section.",
	},
	{
		keywords: []string{"estimate", "price", "cost"},
		reply:    "I'll help you create an estimate. What's the scope of work? For example:\n\n- Tear-off and disposal of existing roof\n- Install new underlayment\n- Install architectural shingles\n- Replace flashing and vents\n\nWhat would you like to include?",
	},
	{
		keywords: []string{"warranty", "guarantee"},
		reply:    "I can add warranty information to your proposal. What type of warranty are you offering?\n\n- Material warranty (manufacturer)\n- Labor warranty (your company)\n- Extended warranty options\n\nLet me know the details!",
	},
	{
		keywords: []string{"homeowner", "customer", "client"},
		reply:    "Got it! I've noted the homeowner information. Would you like to add their contact details (phone and email) as well?",
	},
	{
		keywords: []string{"intro", "letter", "welcome"},
		reply:    "I can help you write a personalized introduction letter. Would you like me to draft one, or would you prefer to write it yourself?",
	},
	{
		keywords: []string{"send", "finalize", "done", "ready"},
		reply:    "Your proposal looks great! When you're ready to send it to the homeowner, finalize it and choose how to deliver it.",
	},
	{
		keywords: []string{"help", "what can you"},
		reply:    "I can help you with:\n\n- Setting up basic project info\n- Writing introduction letters\n- Creating estimates and pricing\n- Adding site photos and documentation\n- Including warranty and terms\n- Adding optional add-ons\n\nWhat would you like to work on?",
	},
	{
		keywords: []string{"start", "new", "create"},
		reply:    "Let's start fresh! What type of project is this proposal for? (e.g., roofing, siding, windows, deck, renovation)",
	},
}

const fallbackReply = "I understand you want to work on the proposal. You can:\n\n- Tell me about the project details\n- Ask me to add specific sections\n- Adjust any section directly\n\nWhat would you like to do next?"

// CannedResponder pattern-matches prompts against a fixed rule table and
// answers after a simulated network delay. It exposes no cancellation of
// its own; a caller torn down mid-wait simply discards the reply.
type CannedResponder struct {
	minDelay time.Duration
	maxDelay time.Duration
}

func NewCannedResponder() chatdomain.Responder {
	return &CannedResponder{
		minDelay: time.Second,
		maxDelay: 2 * time.Second,
	}
}

func (r *CannedResponder) Respond(ctx context.Context, prompt string) (string, error) {
	delay := r.minDelay
	if r.maxDelay > r.minDelay {
		delay += time.Duration(rand.Int63n(int64(r.maxDelay - r.minDelay)))
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
	}

	lower := strings.ToLower(prompt)
	for _, rule := range cannedRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.reply, nil
			}
		}
	}
	return fallbackReply, nil
}
