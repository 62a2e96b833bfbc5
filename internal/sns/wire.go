// Package sns defines the wire contract of the sns.v1 RPC surface: the
// procedure names and the JSON request/response shapes shared by the client
// synchronization layer and the server handlers. Field names follow the
// protojson conventions of the original protocol (camelCase entity fields,
// snake_case request parameters).
package sns

// Fully qualified procedure names. Every call is an HTTP POST to
// "/" + procedure with a JSON body.
const (
	ProcGetMe             = "sns.v1.TenantService/GetMe"
	ProcResolveTenant     = "sns.v1.TenantService/ResolveTenant"
	ProcListFeed          = "sns.v1.TimelineService/ListFeed"
	ProcCreatePost        = "sns.v1.TimelineService/CreatePost"
	ProcListComments      = "sns.v1.TimelineService/ListComments"
	ProcCreateComment     = "sns.v1.TimelineService/CreateComment"
	ProcToggleReaction    = "sns.v1.ReactionService/ToggleReaction"
	ProcListConversations = "sns.v1.DMService/ListConversations"
	ProcGetOrCreateDM     = "sns.v1.DMService/GetOrCreateDM"
	ProcListMessages      = "sns.v1.DMService/ListMessages"
	ProcSendMessage       = "sns.v1.DMService/SendMessage"
)

// Headers carried on every call.
const (
	HeaderTenant          = "X-Tenant"
	HeaderUser            = "X-User"
	HeaderRequestID       = "X-Request-Id"
	HeaderProtocolVersion = "Connect-Protocol-Version"

	ProtocolVersion = "1"
)

// TargetType identifies what a reaction is attached to. Serialized as a
// number, matching the original protocol's enum encoding.
type TargetType int

const (
	TargetTypePost    TargetType = 1
	TargetTypeComment TargetType = 2
)

// Cursor is an opaque pagination token.
type Cursor struct {
	Token string `json:"token"`
}

// Post is a feed entry. LikedByMe and LikeCount are scoped to the calling
// identity.
type Post struct {
	ID           uint64 `json:"id"`
	AuthorUserID uint64 `json:"authorUserId"`
	Body         string `json:"body"`
	CreatedAt    string `json:"createdAt"`
	LikedByMe    bool   `json:"likedByMe"`
	LikeCount    uint32 `json:"likeCount"`
	CommentCount uint32 `json:"commentCount"`
}

// Comment is a comment on a post.
type Comment struct {
	ID           uint64 `json:"id"`
	PostID       uint64 `json:"postId"`
	AuthorUserID uint64 `json:"authorUserId"`
	Body         string `json:"body"`
	CreatedAt    string `json:"createdAt"`
}

// Conversation is a DM conversation. MemberUserIDs is fixed at creation.
type Conversation struct {
	ID            uint64   `json:"id"`
	CreatedAt     string   `json:"createdAt"`
	MemberUserIDs []uint64 `json:"memberUserIds"`
}

// Message is a single message in a conversation.
type Message struct {
	ID             uint64 `json:"id"`
	ConversationID uint64 `json:"conversationId"`
	SenderUserID   uint64 `json:"senderUserId"`
	Body           string `json:"body"`
	CreatedAt      string `json:"createdAt"`
}

// TenantMembership describes one tenant the user belongs to.
type TenantMembership struct {
	TenantID   uint64 `json:"tenantId"`
	TenantSlug string `json:"tenantSlug"`
	Role       string `json:"role"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	UserID      uint64              `json:"userId"`
	DisplayName string              `json:"displayName"`
	Memberships []*TenantMembership `json:"memberships"`
}

type ResolveTenantRequest struct {
	Host string `json:"host"`
}

type ResolveTenantResponse struct {
	TenantID uint64 `json:"tenantId"`
	Slug     string `json:"slug"`
}

type ListFeedRequest struct {
	Cursor *Cursor `json:"cursor,omitempty"`
}

type ListFeedResponse struct {
	Items []Post  `json:"items"`
	Next  *Cursor `json:"next,omitempty"`
}

type CreatePostRequest struct {
	Body string `json:"body"`
}

type CreatePostResponse struct {
	Post *Post `json:"post"`
}

type ListCommentsRequest struct {
	PostID uint64  `json:"post_id"`
	Cursor *Cursor `json:"cursor,omitempty"`
}

type ListCommentsResponse struct {
	Items []Comment `json:"items"`
	Next  *Cursor   `json:"next,omitempty"`
}

type CreateCommentRequest struct {
	PostID uint64 `json:"post_id"`
	Body   string `json:"body"`
}

type CreateCommentResponse struct {
	Comment *Comment `json:"comment"`
}

type ToggleReactionRequest struct {
	TargetType TargetType `json:"targetType"`
	TargetID   uint64     `json:"targetId"`
	Type       string     `json:"type"`
}

type ToggleReactionResponse struct {
	Active bool   `json:"active"`
	Total  uint32 `json:"total"`
}

type ListConversationsRequest struct {
	Cursor *Cursor `json:"cursor,omitempty"`
}

type ListConversationsResponse struct {
	Items []Conversation `json:"items"`
	Next  *Cursor        `json:"next,omitempty"`
}

type GetOrCreateDMRequest struct {
	OtherUserID uint64 `json:"other_user_id"`
}

type GetOrCreateDMResponse struct {
	ConversationID uint64 `json:"conversation_id"`
}

type ListMessagesRequest struct {
	ConversationID uint64  `json:"conversation_id"`
	Cursor         *Cursor `json:"cursor,omitempty"`
}

type ListMessagesResponse struct {
	Items []Message `json:"items"`
	Next  *Cursor   `json:"next,omitempty"`
}

type SendMessageRequest struct {
	ConversationID uint64 `json:"conversation_id"`
	Body           string `json:"body"`
}

type SendMessageResponse struct {
	Message *Message `json:"message"`
}
