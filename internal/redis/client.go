package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

var ErrOTPNotFound = errors.New("otp not found")

type Client struct {
	rdb *redis.Client
}

// OTPEntry is what gets stored per phone number while a code is pending.
// Only the bcrypt hash of the code ever reaches Redis.
type OTPEntry struct {
	CodeHash     string `json:"code_hash"`
	AttemptsLeft int    `json:"attempts_left"`
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// SetOTP stores the entry under the phone, replacing any pending code.
func (c *Client) SetOTP(phone string, entry *OTPEntry, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal otp entry: %w", err)
	}

	return c.rdb.Set(ctx, "otp:"+phone, jsonData, ttl).Err()
}

func (c *Client) GetOTP(phone string) (*OTPEntry, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "otp:"+phone).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrOTPNotFound
		}
		return nil, fmt.Errorf("failed to get otp entry: %w", err)
	}

	var entry OTPEntry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal otp entry: %w", err)
	}

	return &entry, nil
}

// UpdateOTP rewrites the entry (attempt bookkeeping) without touching the TTL.
func (c *Client) UpdateOTP(phone string, entry *OTPEntry) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal otp entry: %w", err)
	}

	return c.rdb.Set(ctx, "otp:"+phone, jsonData, redis.KeepTTL).Err()
}

func (c *Client) DeleteOTP(phone string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "otp:"+phone).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
