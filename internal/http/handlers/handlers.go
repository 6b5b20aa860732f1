package handlers

// Handlers groups the HTTP endpoints for every API resource. It depends on
// abstract service interfaces (declared next to each resource's handlers)
// to keep transport concerns separate from business logic.
type Handlers struct {
	authSvc    AuthService
	peopleSvc  PersonService
	booksSvc   BookService
	tagsSvc    TagService
	clubsSvc   ClubService
	membersSvc MemberService
	historySvc HistoryService
	chatsSvc   ChatService
	msgSvc     MessageService
	reviewsSvc ReviewService
}

// New constructs a Handlers instance bound to the given services.
func New(
	authSvc AuthService,
	peopleSvc PersonService,
	booksSvc BookService,
	tagsSvc TagService,
	clubsSvc ClubService,
	membersSvc MemberService,
	historySvc HistoryService,
	chatsSvc ChatService,
	msgSvc MessageService,
	reviewsSvc ReviewService,
) *Handlers {
	return &Handlers{
		authSvc:    authSvc,
		peopleSvc:  peopleSvc,
		booksSvc:   booksSvc,
		tagsSvc:    tagsSvc,
		clubsSvc:   clubsSvc,
		membersSvc: membersSvc,
		historySvc: historySvc,
		chatsSvc:   chatsSvc,
		msgSvc:     msgSvc,
		reviewsSvc: reviewsSvc,
	}
}
