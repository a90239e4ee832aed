package services

import (
	"fmt"
	"math/rand"
	"strings"
)

// FallbackService produces canned responses when the completion endpoint
// is unavailable. It never fails: any input maps to a non-empty reply.
type FallbackService struct {
	intn func(n int) int
}

// NewFallbackService takes a random source for the generic-reply pick.
// Pass nil for the default source; tests inject a deterministic one.
func NewFallbackService(intn func(n int) int) *FallbackService {
	if intn == nil {
		intn = rand.Intn
	}
	return &FallbackService{intn: intn}
}

// Keyword categories, checked in priority order; first match wins.
var (
	mlKeywords       = []string{"machine learning", "ml"}
	aiKeywords       = []string{"artificial intelligence", "ai", "robot", "automation"}
	techKeywords     = []string{"technology", "computer", "programming", "coding"}
	scienceKeywords  = []string{"science", "physics", "chemistry", "biology"}
	learningKeywords = []string{"learn", "study", "education", "school", "university"}
	workKeywords     = []string{"work", "job", "career", "profession"}
)

// Respond picks a reply for the message. The display name is interpolated
// where the templates call for it; an empty name becomes "friend".
func (s *FallbackService) Respond(message, name string) string {
	msg := strings.ToLower(strings.TrimSpace(message))
	if name == "" {
		name = "friend"
	}

	switch {
	case containsAny(msg, mlKeywords):
		return "Machine learning is a type of artificial intelligence where computers learn patterns from data " +
			"without being explicitly programmed. It's like teaching a computer to recognize patterns and make " +
			"predictions based on examples, similar to how humans learn from experience!"

	case containsAny(msg, aiKeywords):
		return "Artificial Intelligence is fascinating! It's technology that enables machines to simulate human " +
			"intelligence - learning, reasoning, and problem-solving. From voice assistants like me to " +
			"recommendation systems, AI is everywhere around us today."

	case containsAny(msg, techKeywords):
		return fmt.Sprintf("Technology is constantly evolving! Whether it's programming languages, software "+
			"development, or emerging tech like quantum computing, there's always something exciting happening. "+
			"What specific area interests you most, %s?", name)

	case containsAny(msg, scienceKeywords):
		return "Science helps us understand the world around us! From the smallest atoms to the vast universe, " +
			"scientific discoveries constantly amaze me. What scientific topic would you like to explore together?"

	case containsAny(msg, learningKeywords):
		return fmt.Sprintf("Learning is a lifelong journey, %s! Whether you're studying for school, picking up "+
			"new skills, or exploring hobbies, I'm here to help however I can. What would you like to learn about?", name)

	case containsAny(msg, workKeywords):
		return "Career development is important! Whether you're job searching, skill building, or planning your " +
			"next move, having clear goals helps. What aspect of your career interests you most right now?"
	}

	defaults := []string{
		fmt.Sprintf("That's a thought-provoking question, %s! While I'd love to give you a more detailed answer, "+
			"I find these topics really interesting to discuss. What's your perspective on this?", name),
		"I appreciate you asking about that! It's the kind of topic that could lead to a great conversation. " +
			"What made you curious about this particular subject?",
		"Interesting question! While I might not have all the specific details, I enjoy exploring ideas together. " +
			"What aspects of this topic interest you most?",
		fmt.Sprintf("That's worth thinking about, %s! I find it fascinating when people ask thoughtful questions "+
			"like this. Have you been researching this topic recently?", name),
	}

	return defaults[s.intn(len(defaults))]
}

func containsAny(msg string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}
