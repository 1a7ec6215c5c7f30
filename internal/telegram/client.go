package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Update represents a Telegram update
type Update struct {
	UpdateID      int            `json:"update_id"`
	Message       *Message       `json:"message"`
	CallbackQuery *CallbackQuery `json:"callback_query"`
}

// Message represents a Telegram message
type Message struct {
	MessageID int    `json:"message_id"`
	From      User   `json:"from"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

// CallbackQuery represents a button press on an inline keyboard
type CallbackQuery struct {
	ID      string   `json:"id"`
	From    User     `json:"from"`
	Message *Message `json:"message"`
	Data    string   `json:"data"`
}

// User represents a Telegram user
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
}

// Chat represents a Telegram chat
type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// InlineButton is one button on an inline keyboard
type InlineButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

// Client is a wrapper for the Telegram Bot API
type Client struct {
	Token      string
	APIBase    string
	HTTPClient *http.Client
}

// NewClient creates a new Telegram client
func NewClient(token string) *Client {
	return &Client{
		Token:      token,
		APIBase:    "https://api.telegram.org",
		HTTPClient: &http.Client{},
	}
}

// GetUpdates fetches new updates from Telegram
func (c *Client) GetUpdates(offset int, timeout int) ([]Update, error) {
	u := fmt.Sprintf("%s/bot%s/getUpdates?offset=%d&timeout=%d", c.APIBase, c.Token, offset, timeout)

	resp, err := c.HTTPClient.Get(u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram API returned status: %s", resp.Status)
	}

	var result struct {
		OK     bool     `json:"ok"`
		Result []Update `json:"result"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	if !result.OK {
		return nil, fmt.Errorf("telegram API reported error in response")
	}

	return result.Result, nil
}

// SendMessage sends a plain message to a specific chat
func (c *Client) SendMessage(chatID int64, text string) error {
	return c.send(chatID, text, nil)
}

// SendMessageWithButtons sends a message with an inline keyboard; each
// inner slice is one row of buttons
func (c *Client) SendMessageWithButtons(chatID int64, text string, rows [][]InlineButton) error {
	return c.send(chatID, text, rows)
}

func (c *Client) send(chatID int64, text string, rows [][]InlineButton) error {
	apiURL := fmt.Sprintf("%s/bot%s/sendMessage", c.APIBase, c.Token)

	payload := map[string]interface{}{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "Markdown",
	}
	if len(rows) > 0 {
		payload["reply_markup"] = map[string]interface{}{
			"inline_keyboard": rows,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := c.HTTPClient.Post(apiURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API returned status: %v", resp.Status)
	}

	return nil
}

// AnswerCallbackQuery acknowledges a button press so the client stops
// showing its loading spinner
func (c *Client) AnswerCallbackQuery(callbackID string) error {
	apiURL := fmt.Sprintf("%s/bot%s/answerCallbackQuery", c.APIBase, c.Token)

	body, err := json.Marshal(map[string]interface{}{
		"callback_query_id": callbackID,
	})
	if err != nil {
		return err
	}

	resp, err := c.HTTPClient.Post(apiURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API returned status: %v", resp.Status)
	}

	return nil
}
