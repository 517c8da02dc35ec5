package spotlight

import "fmt"

// Prompt builds the instruction sent upstream for the given shape
func Prompt(shape Shape, topic string) string {
	if topic == "" {
		topic = DefaultTopic
	}
	if shape == TwoField {
		return fmt.Sprintf("Generate an inspiring quote from a fictional creator working on %s in Iraq, and a fictional creator handle. The handle should start with '@'.", topic)
	}
	return fmt.Sprintf(`Generate a short JSON object describing a creator spotlight for an Iraqi civic tech initiative about %s. Use the format {"quote": string, "creator": string, "handle": string}.`, topic)
}
