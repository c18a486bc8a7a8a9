package gemini

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	vo "github.com/crosszan/gemini-web/vo/gemini_vo"
)

// SaveConversation upserts the current session state into the named record
// of a conversation file. Names are unique; saving an existing name
// replaces its record.
func (c *Chatbot) SaveConversation(filePath, conversationName string) error {
	conversations, err := c.LoadConversations(filePath)
	if err != nil {
		return err
	}

	record := vo.SavedConversation{
		ConversationName: conversationName,
		ReqID:            c.reqID,
		ConversationID:   c.conversationID,
		ResponseID:       c.responseID,
		ChoiceID:         c.choiceID,
		Token:            c.token,
		ModelName:        c.model.Name(),
		Timestamp:        strconv.FormatInt(time.Now().Unix(), 10),
	}

	found := false
	for i := range conversations {
		if conversations[i].ConversationName == conversationName {
			conversations[i] = record
			found = true
			break
		}
	}
	if !found {
		conversations = append(conversations, record)
	}

	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create conversation directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(conversations, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal conversations: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write conversation file: %w", err)
	}

	return nil
}

// LoadConversations reads all saved conversations; a missing file is an
// empty list, not an error.
func (c *Chatbot) LoadConversations(filePath string) ([]vo.SavedConversation, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []vo.SavedConversation{}, nil
		}
		return nil, fmt.Errorf("failed to read conversation file: %w", err)
	}

	var conversations []vo.SavedConversation
	if err := json.Unmarshal(data, &conversations); err != nil {
		return nil, fmt.Errorf("failed to parse conversation file: %w", err)
	}

	return conversations, nil
}

// LoadConversation restores the session state saved under the given name.
// Returns false when no record matches. An unknown persisted model name
// leaves the current model unchanged.
func (c *Chatbot) LoadConversation(filePath, conversationName string) (bool, error) {
	conversations, err := c.LoadConversations(filePath)
	if err != nil {
		return false, err
	}

	for _, conv := range conversations {
		if conv.ConversationName != conversationName {
			continue
		}

		c.reqID = conv.ReqID
		c.conversationID = conv.ConversationID
		c.responseID = conv.ResponseID
		c.choiceID = conv.ChoiceID
		c.token = conv.Token

		if model, ok := vo.ModelFromName(conv.ModelName); ok {
			c.model = model
		}

		return true, nil
	}

	return false, nil
}
