package event

// World lifecycle events. Names are captured at emission time, so an event
// stays meaningful after the group it describes is renamed or cleared.

type ClanAdded struct {
	Clan string
}

type AreaAdded struct {
	Area string
	Kind string
}

type ReachabilityAdded struct {
	From string
	To   string
}

type GroupAdded struct {
	Group      string
	Clan       string
	Area       string
	Population int
}

type GroupMoved struct {
	Group string
	From  string
	To    string
}

type ClansBefriended struct {
	A string
	B string
}

type ClansUnited struct {
	A    string
	B    string
	Name string
}

// Group interaction events.

type GroupsUnited struct {
	Survivor   string // name the merged group carries afterwards
	Absorbed   string // name of the side that was cleared
	Population int
}

type GroupDivided struct {
	Group    string
	Fragment string
}

type FightResolved struct {
	Attacker string
	Defender string
	Outcome  string // from the attacker's side: won, lost, draw
	Cleared  []string
}

type TradeCompleted struct {
	Initiator string
	Partner   string
	Amount    int
}

type RulerChanged struct {
	Area  string
	Ruler string // empty when the area has no ruler
}
