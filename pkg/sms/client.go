package sms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	BaseURL    string
	APIKey     string
	LineNumber string
	HTTPClient *http.Client
}

type SendMessageRequest struct {
	Receptor   string `json:"receptor"`
	Message    string `json:"message"`
	LineNumber string `json:"line_number"`
}

type SendMessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		MessageID string `json:"message_id"`
		Status    string `json:"status"`
	} `json:"data"`
}

func NewClient(baseURL, apiKey, lineNumber string) *Client {
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		LineNumber: lineNumber,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Convert phone number from 09xxx to +989xxx format
func (c *Client) convertPhoneNumber(phone string) string {
	if strings.HasPrefix(phone, "09") {
		return "+989" + phone[2:]
	}
	return phone
}

// Send message via the SMS gateway
func (c *Client) SendMessage(phone, message string) (*SendMessageResponse, error) {
	requestData := SendMessageRequest{
		Receptor:   c.convertPhoneNumber(phone),
		Message:    message,
		LineNumber: c.LineNumber,
	}

	jsonData, err := json.Marshal(requestData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request data: %w", err)
	}

	url := fmt.Sprintf("%s/v1/sms/send", c.BaseURL)

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var response SendMessageResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if !response.Success {
		return &response, fmt.Errorf("sms gateway rejected message: %s", response.Message)
	}

	return &response, nil
}

// Send a one-time verification code
func (c *Client) SendOTP(phone, code string) error {
	_, err := c.SendMessage(phone, fmt.Sprintf("Medident verification code: %s", code))
	return err
}
