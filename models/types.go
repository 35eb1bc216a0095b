package models

import (
	"strings"
	"time"
)

// Idea categories
type Category string

const (
	CategoryHealthcare Category = "HEALTHCARE"
	CategoryFintech    Category = "FINTECH"
	CategoryEdutech    Category = "EDUTECH"
	CategoryEcommerce  Category = "ECOMMERCE"
	CategorySaaS       Category = "SAAS"
	CategorySocial     Category = "SOCIAL"
	CategoryOther      Category = "OTHER"
)

var categoryLabels = map[Category]string{
	CategoryHealthcare: "Healthcare",
	CategoryFintech:    "Fintech",
	CategoryEdutech:    "Edutech",
	CategoryEcommerce:  "E-commerce",
	CategorySaaS:       "SaaS",
	CategorySocial:     "Social",
	CategoryOther:      "Other",
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display name, "Other" for unknown values.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return categoryLabels[CategoryOther]
}

// Idea stages
type Stage string

const (
	StageIdea      Stage = "IDEA"
	StagePrototype Stage = "PROTOTYPE"
	StageMVP       Stage = "MVP"
	StageLaunched  Stage = "LAUNCHED"
)

func (s Stage) Valid() bool {
	switch s {
	case StageIdea, StagePrototype, StageMVP, StageLaunched:
		return true
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Application status constants
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "PENDING"
	StatusApproved ApplicationStatus = "APPROVED"
	StatusRejected ApplicationStatus = "REJECTED"
)

// CanTransitionTo reports whether an owner decision may move s to next.
// Only PENDING applications can be decided; decisions are terminal.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	return s == StatusPending && (next == StatusApproved || next == StatusRejected)
}

// Member roles in a feed detail
const (
	RoleOwner  = "OWNER"
	RoleMember = "MEMBER"
)

const TokenTypeBearer = "Bearer"

// Auth request types

type EmailRequest struct {
	Email string `json:"email"`
}

type EmailVerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	BirthDate string `json:"birthDate,omitempty"` // YYYY-MM-DD
	Gender    Gender `json:"gender,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PasswordResetRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

type PasswordChangeRequest struct {
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

// nil fields are left unchanged
type UpdateUserRequest struct {
	Name      *string `json:"name,omitempty"`
	BirthDate *string `json:"birthDate,omitempty"`
	Gender    *Gender `json:"gender,omitempty"`
}

type ProfileImageUpdateRequest struct {
	ImageURL string `json:"imageUrl"`
}

// Auth response types

type MessageResponse struct {
	Message string `json:"message"`
}

type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

type UserResponse struct {
	UserID          int64  `json:"userId"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	BirthDate       string `json:"birthDate,omitempty"`
	Gender          Gender `json:"gender,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

type ProfileImageResponse struct {
	ImageURL string `json:"imageUrl"`
}

type MyTeamResponse struct {
	FeedID    int64     `json:"feedId"`
	IdeaTitle string    `json:"ideaTitle"`
	OwnerName string    `json:"ownerName"`
	Stack     string    `json:"stack"`
	JoinedAt  time.Time `json:"joinedAt"`
}

// Idea types

type IdeaCreateRequest struct {
	Title           string   `json:"title"`
	Problem         string   `json:"problem"`
	TargetCustomer  string   `json:"targetCustomer"`
	Solution        string   `json:"solution"`
	Differentiation string   `json:"differentiation"`
	Category        Category `json:"category"`
	Stage           Stage    `json:"stage"`
}

type IdeaResponse struct {
	IdeaID          int64     `json:"ideaId"`
	Title           string    `json:"title"`
	Problem         string    `json:"problem"`
	TargetCustomer  string    `json:"targetCustomer"`
	Solution        string    `json:"solution"`
	Differentiation string    `json:"differentiation"`
	Category        Category  `json:"category"`
	Stage           Stage     `json:"stage"`
	CreatedAt       time.Time `json:"createdAt"`
}

type AnalysisResponse struct {
	AnalysisID       int64     `json:"analysisId"`
	IdeaID           int64     `json:"ideaId"`
	MarketScore      int       `json:"marketScore"`
	InnovationScore  int       `json:"innovationScore"`
	FeasibilityScore int       `json:"feasibilityScore"`
	TotalScore       int       `json:"totalScore"`
	Strength1        string    `json:"strength1,omitempty"`
	Strength2        string    `json:"strength2,omitempty"`
	Improvements1    string    `json:"improvements1,omitempty"`
	Improvements2    string    `json:"improvements2,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Feed types

type PositionRequest struct {
	Stack    string `json:"stack"`
	Capacity int    `json:"capacity"`
}

type FeedCreateRequest struct {
	IdeaID    int64             `json:"ideaId"`
	Positions []PositionRequest `json:"positions"`
}

// FeedListItem is one row of GET /api/feeds. LikedByMe is viewer-relative
// and always false for anonymous requests.
type FeedListItem struct {
	FeedID       int64     `json:"feedId"`
	Title        string    `json:"title"`
	Problem      string    `json:"problem"`
	Category     Category  `json:"category"`
	AuthorName   string    `json:"authorName"`
	TotalScore   *int      `json:"totalScore"`
	LikeCount    int       `json:"likeCount"`
	CommentCount int       `json:"commentCount"`
	LikedByMe    bool      `json:"likedByMe"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Matches reports whether the item contains term (case-insensitive) in its
// title, problem, author name or category label.
func (f FeedListItem) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, field := range []string{f.Title, f.Problem, f.AuthorName, f.Category.Label()} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

type FeedMember struct {
	UserID          int64  `json:"userId"`
	Name            string `json:"name"`
	Role            string `json:"role"`
	Stack           string `json:"stack,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

// remaining = capacity - filled
type FeedPosition struct {
	Stack     string `json:"stack"`
	Capacity  int    `json:"capacity"`
	Filled    int    `json:"filled"`
	Remaining int    `json:"remaining"`
}

type FeedDetailResponse struct {
	FeedID           int64          `json:"feedId"`
	IdeaID           int64          `json:"ideaId"`
	Title            string         `json:"title"`
	Problem          string         `json:"problem"`
	TargetCustomer   string         `json:"targetCustomer"`
	Solution         string         `json:"solution"`
	Differentiation  string         `json:"differentiation"`
	Category         Category       `json:"category"`
	Stage            Stage          `json:"stage"`
	AuthorName       string         `json:"authorName"`
	MarketScore      *int           `json:"marketScore"`
	InnovationScore  *int           `json:"innovationScore"`
	FeasibilityScore *int           `json:"feasibilityScore"`
	TotalScore       *int           `json:"totalScore"`
	Strength1        string         `json:"strength1,omitempty"`
	Strength2        string         `json:"strength2,omitempty"`
	Improvements1    string         `json:"improvements1,omitempty"`
	Improvements2    string         `json:"improvements2,omitempty"`
	LikeCount        int            `json:"likeCount"`
	CommentCount     int            `json:"commentCount"`
	LikedByMe        bool           `json:"likedByMe"`
	IsOwner          bool           `json:"isOwner"`
	Members          []FeedMember   `json:"members"`
	Positions        []FeedPosition `json:"positions"`
	CreatedAt        time.Time      `json:"createdAt"`
}

type CommentRequest struct {
	Content string `json:"content"`
}

type CommentResponse struct {
	CommentID  int64     `json:"commentId"`
	FeedID     int64     `json:"feedId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ApplyRequest struct {
	Stack string `json:"stack"`
}

type ApplicationResponse struct {
	ApplicationID int64             `json:"applicationId"`
	FeedID        int64             `json:"feedId"`
	ApplicantName string            `json:"applicantName"`
	Stack         string            `json:"stack"`
	Status        ApplicationStatus `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// Roadmap persistence types. Timeline carries the period answer.

type RoadmapCreateRequest struct {
	TeamSize string `json:"teamSize"`
	Budget   string `json:"budget"`
	Timeline string `json:"timeline"`
	Priority string `json:"priority"`
}

type RoadmapResponse struct {
	RoadmapID int64     `json:"roadmapId"`
	TeamSize  string    `json:"teamSize"`
	Budget    string    `json:"budget"`
	Timeline  string    `json:"timeline"`
	Priority  string    `json:"priority"`
	CreatedAt time.Time `json:"createdAt"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
