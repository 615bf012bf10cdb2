package models

import "time"

// Role is the backend-assigned account role.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Response is the envelope every backend endpoint wraps its payload in.
// Code carries the application status, which is not always the HTTP status.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Role    string `json:"role"`
	Token   string `json:"token"`
}

type SignupRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Organisation string `json:"organisation"`
	Country      string `json:"country"`
	LeetcodeID   string `json:"leetcode_id"`
}

type SignupResponse struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	UserInfo struct {
		Role     string `json:"role"`
		Username string `json:"username"`
	} `json:"user_info"`
}

type GetRoleResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Role    string `json:"role"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	OTP      string `json:"otp"`
}

type Question struct {
	ID          string   `json:"question_id"`
	TitleSlug   string   `json:"question_title_slug"`
	Title       string   `json:"question_title"`
	Difficulty  string   `json:"difficulty"`
	Link        string   `json:"question_link"`
	TopicTags   []string `json:"topic_tags"`
	CompanyTags []string `json:"company_tags"`
}

type QuestionsResponse struct {
	Code      int        `json:"code"`
	Message   string     `json:"message"`
	Questions []Question `json:"questions"`
	Total     int        `json:"total"`
}

type User struct {
	Role         string    `json:"role"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Organisation string    `json:"organisation"`
	Country      string    `json:"country"`
	IsBanned     bool      `json:"is_banned"`
	LeetcodeID   string    `json:"leetcode_id"`
	LastSeen     time.Time `json:"last_seen"`
}

type UsersListResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Total   int    `json:"total"`
	Users   []User `json:"users"`
}

type UserProfile struct {
	Username     string `json:"username"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	LeetcodeID   string `json:"leetcodeId"`
	Organisation string `json:"organisation"`
	Country      string `json:"country"`
	Avatar       string `json:"avatar"`
}

type UserProfileResponse struct {
	Code        int         `json:"code"`
	Message     string      `json:"message"`
	UserProfile UserProfile `json:"user_profile"`
}

type UpdateProfileRequest struct {
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	Organisation string `json:"organisation,omitempty"`
	Country      string `json:"country,omitempty"`
	LeetcodeID   string `json:"leetcode_id,omitempty"`
}

// LeetcodeStats is the judge-side progress aggregate for a user.
type LeetcodeStats struct {
	TotalQuestionsCount     int      `json:"TotalQuestionsCount"`
	TotalQuestionsDoneCount int      `json:"TotalQuestionsDoneCount"`
	TotalEasyCount          int      `json:"TotalEasyCount"`
	TotalMediumCount        int      `json:"TotalMediumCount"`
	TotalHardCount          int      `json:"TotalHardCount"`
	EasyDoneCount           int      `json:"EasyDoneCount"`
	MediumDoneCount         int      `json:"MediumDoneCount"`
	HardDoneCount           int      `json:"HardDoneCount"`
	RecentACSubmissionTitle []string `json:"recent_ac_submission_title"`
	RecentACSubmissionIDs   []string `json:"recent_ac_submission_ids"`
}

// CodesageStats is the platform-side progress aggregate for a user.
type CodesageStats struct {
	TotalQuestionsCount     int            `json:"TotalQuestionsCount"`
	TotalQuestionsDoneCount int            `json:"TotalQuestionsDoneCount"`
	TotalEasyCount          int            `json:"TotalEasyCount"`
	TotalMediumCount        int            `json:"TotalMediumCount"`
	TotalHardCount          int            `json:"TotalHardCount"`
	EasyDoneCount           int            `json:"EasyDoneCount"`
	MediumDoneCount         int            `json:"MediumDoneCount"`
	HardDoneCount           int            `json:"HardDoneCount"`
	CompanyWiseStats        map[string]int `json:"CompanyWiseStats"`
	TopicWiseStats          map[string]int `json:"TopicWiseStats"`
}

type UserProgressResponse struct {
	Code          int           `json:"code"`
	Message       string        `json:"message"`
	LeetcodeStats LeetcodeStats `json:"leetcodeStats"`
	CodesageStats CodesageStats `json:"codesageStats"`
}

type DifficultyWiseQuestionsCount struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

type PlatformStats struct {
	ActiveUserInLast24Hours      int                          `json:"ActiveUserInLast24Hours"`
	TotalQuestionsCount          int                          `json:"TotalQuestionsCount"`
	DifficultyWiseQuestionsCount DifficultyWiseQuestionsCount `json:"DifficultyWiseQuestionsCount"`
	TopicWiseQuestionsCount      map[string]int               `json:"TopicWiseQuestionsCount"`
	CompanyWiseQuestionsCount    map[string]int               `json:"CompanyWiseQuestionsCount"`
}

type PlatformStatsResponse struct {
	Code    int           `json:"code"`
	Message string        `json:"message"`
	Stats   PlatformStats `json:"stats"`
}
