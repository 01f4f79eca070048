package models

import "time"

// TelegramUser is a bot player record. The bot process owns these rows;
// this service only reads them.
type TelegramUser struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)" json:"_id"`
	UserID          string    `gorm:"size:32;not null;uniqueIndex" json:"userId"`
	Username        string    `gorm:"size:64" json:"username"`
	FirstName       string    `gorm:"size:128" json:"firstName"`
	LastName        string    `gorm:"size:128" json:"lastName"`
	TotalBalance    int64     `gorm:"not null" json:"totalBalance"`
	Balance         *int64    `json:"balance"`
	TapBalance      int64     `gorm:"not null" json:"tapBalance"`
	Energy          int64     `gorm:"not null" json:"energy"`
	FreeGuru        int       `gorm:"not null" json:"freeGuru"`
	FullTank        int       `gorm:"not null" json:"fullTank"`
	LevelID         int       `gorm:"not null" json:"levelId"`
	LevelName       string    `gorm:"size:32" json:"levelName"`
	RefereeID       *string   `gorm:"size:32" json:"refereeId"`
	ReferralCount   int       `gorm:"not null" json:"referralCount"`
	TwitterUserName string    `gorm:"size:64" json:"twitterUserName"`
	TonWalletAddr   string    `gorm:"column:ton_wallet_address;size:128" json:"tonWalletAddress"`
	CreatedAt       time.Time `json:"createdAt"`
}

// TelegramUserResponse is a TelegramUser with its wallet address in
// canonical user-friendly form.
type TelegramUserResponse struct {
	TelegramUser
	WalletValid bool `json:"walletValid"`
}

// TelegramUsersResponse represents the telegram users listing
type TelegramUsersResponse struct {
	Status        string                  `json:"status" example:"success"`
	TelegramUsers []*TelegramUserResponse `json:"telegramUsers"`
}
