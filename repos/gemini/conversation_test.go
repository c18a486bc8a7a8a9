package gemini

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	vo "github.com/crosszan/gemini-web/vo/gemini_vo"
)

func testBot() *Chatbot {
	return &Chatbot{
		logger:         zap.NewNop(),
		token:          "tok-1",
		conversationID: "c1",
		responseID:     "r1",
		choiceID:       "ch1",
		reqID:          4242424,
		model:          vo.ModelG25Flash,
	}
}

func TestSaveAndLoadConversationRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversations.json")

	bot := testBot()
	require.NoError(t, bot.SaveConversation(path, "work"))

	// Wipe the session, then restore by name.
	restored := &Chatbot{logger: zap.NewNop(), model: vo.ModelUnspecified}
	found, err := restored.LoadConversation(path, "work")
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, uint32(4242424), restored.reqID)
	assert.Equal(t, "c1", restored.conversationID)
	assert.Equal(t, "r1", restored.responseID)
	assert.Equal(t, "ch1", restored.choiceID)
	assert.Equal(t, "tok-1", restored.token)
	assert.Equal(t, vo.ModelG25Flash, restored.model)
}

func TestSaveConversationUpsertsByName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversations.json")

	bot := testBot()
	require.NoError(t, bot.SaveConversation(path, "work"))

	bot.conversationID = "c2"
	require.NoError(t, bot.SaveConversation(path, "work"))
	require.NoError(t, bot.SaveConversation(path, "other"))

	conversations, err := bot.LoadConversations(path)
	require.NoError(t, err)
	require.Len(t, conversations, 2)
	assert.Equal(t, "work", conversations[0].ConversationName)
	assert.Equal(t, "c2", conversations[0].ConversationID)
	assert.Equal(t, "other", conversations[1].ConversationName)
}

func TestSaveConversationCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "conversations.json")

	bot := testBot()
	require.NoError(t, bot.SaveConversation(path, "work"))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestLoadConversationsMissingFile(t *testing.T) {
	bot := testBot()

	conversations, err := bot.LoadConversations(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, conversations)
}

func TestLoadConversationUnknownName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversations.json")

	bot := testBot()
	require.NoError(t, bot.SaveConversation(path, "work"))

	found, err := bot.LoadConversation(path, "no-such-name")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLoadConversationUnknownModelLeavesModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversations.json")

	require.NoError(t, os.WriteFile(path, []byte(`[
		{
			"conversation_name": "legacy",
			"_reqid": 7,
			"conversation_id": "c9",
			"response_id": "r9",
			"choice_id": "ch9",
			"SNlM0e": "tok-9",
			"model_name": "gemini-99-ultra",
			"timestamp": "1724400000"
		}
	]`), 0o600))

	bot := testBot()
	found, err := bot.LoadConversation(path, "legacy")
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, "c9", bot.conversationID)
	assert.Equal(t, "tok-9", bot.token)
	assert.Equal(t, vo.ModelG25Flash, bot.model, "unknown model name leaves model unchanged")
}

func TestLoadConversationsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversations.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	bot := testBot()
	_, err := bot.LoadConversations(path)
	require.Error(t, err)
}
