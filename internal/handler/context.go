package handler

type ContextKey string

var (
	IdentityCtx    ContextKey = "identity"
	MyInfoCtx      ContextKey = "myInfo"
	PostingCtx     ContextKey = "posting"
	ApplicationCtx ContextKey = "application"
)
