package linkedin

import (
	"fmt"

	"github.com/brizzai/linkedin-connector/internal/auth/constants"
)

// UGCPost is the body of POST /ugcPosts
type UGCPost struct {
	Author          string          `json:"author"`
	LifecycleState  string          `json:"lifecycleState"`
	SpecificContent SpecificContent `json:"specificContent"`
	Visibility      Visibility      `json:"visibility"`
}

type SpecificContent struct {
	ShareContent ShareContent `json:"com.linkedin.ugc.ShareContent"`
}

type ShareContent struct {
	ShareCommentary    ShareCommentary `json:"shareCommentary"`
	ShareMediaCategory string          `json:"shareMediaCategory"`
}

type ShareCommentary struct {
	Text string `json:"text"`
}

type Visibility struct {
	MemberNetworkVisibility string `json:"com.linkedin.ugc.MemberNetworkVisibility"`
}

// PersonURN returns urn:<namespace>:person:<id>
func PersonURN(namespace, id string) string {
	if namespace == "" {
		namespace = constants.DefaultURNNamespace
	}
	return fmt.Sprintf("urn:%s:person:%s", namespace, id)
}

// NewTextPost builds a public, published text-only post
func NewTextPost(authorURN, text string) *UGCPost {
	return &UGCPost{
		Author:         authorURN,
		LifecycleState: constants.LifecycleStatePublished,
		SpecificContent: SpecificContent{
			ShareContent: ShareContent{
				ShareCommentary:    ShareCommentary{Text: text},
				ShareMediaCategory: constants.ShareMediaCategoryNone,
			},
		},
		Visibility: Visibility{
			MemberNetworkVisibility: constants.VisibilityPublic,
		},
	}
}
