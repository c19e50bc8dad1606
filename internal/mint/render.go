package mint

// Action is what the page's single button does.
type Action int

const (
	ActionNone Action = iota
	ActionConnect
	ActionStartPresale
	ActionPresaleMint
	ActionPublicMint
)

func (a Action) String() string {
	switch a {
	case ActionConnect:
		return "connect"
	case ActionStartPresale:
		return "startPresale"
	case ActionPresaleMint:
		return "presaleMint"
	case ActionPublicMint:
		return "mint"
	default:
		return "none"
	}
}

// Presentation is the fixed content for one UIState.
type Presentation struct {
	Action  Action
	Label   string // button label, empty when there is no button
	Message string
}

var presentations = map[UIState]Presentation{
	Disconnected: {Action: ActionConnect, Label: "Connect your wallet"},
	Loading:      {Label: "Loading..."},
	OwnerCanStart: {
		Action: ActionStartPresale,
		Label:  "Start Presale!",
	},
	PresaleNotStarted: {Message: "Presale hasn't started!"},
	PresaleActiveMintable: {
		Action:  ActionPresaleMint,
		Label:   "Presale Mint 🚀",
		Message: "Presale has started!!! If your address is whitelisted, Mint a Crypto Dev 🥳",
	},
	PublicMintable: {Action: ActionPublicMint, Label: "Public Mint 🚀"},
}

// Render returns the presentation for s.
func Render(s UIState) Presentation {
	return presentations[s]
}

// HasButton reports whether the presentation shows a clickable button.
func (p Presentation) HasButton() bool { return p.Action != ActionNone }
