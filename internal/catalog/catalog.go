// Package catalog holds the read-only set of terminal log entries.
package catalog

// NotFound is returned by Get for keys that are not in the catalog.
const NotFound = "Log not found."

// Entry is a single log in definition order.
type Entry struct {
	Key  string
	Body string
}

// Catalog is an immutable ordered mapping from log key to body.
type Catalog struct {
	keys   []string
	bodies map[string]string
}

// New builds a catalog from entries. Later duplicates are ignored; use
// LoadFile when duplicates should be rejected.
func New(entries []Entry) *Catalog {
	c := &Catalog{
		keys:   make([]string, 0, len(entries)),
		bodies: make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		if _, ok := c.bodies[e.Key]; ok {
			continue
		}
		c.keys = append(c.keys, e.Key)
		c.bodies[e.Key] = e.Body
	}
	return c
}

// Get returns the body for key or NotFound.
func (c *Catalog) Get(key string) string {
	if c == nil {
		return NotFound
	}
	if body, ok := c.bodies[key]; ok {
		return body
	}
	return NotFound
}

// Has reports whether key is in the catalog.
func (c *Catalog) Has(key string) bool {
	if c == nil {
		return false
	}
	_, ok := c.bodies[key]
	return ok
}

// Keys returns the keys in definition order.
func (c *Catalog) Keys() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.keys...)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Default returns the built-in terminal logs.
func Default() *Catalog {
	return New(defaultEntries)
}

var defaultEntries = []Entry{
	{Key: "COMM_01", Body: ">> RE: FUSION CELL STOCK\n" +
		"FROM: J.C. <jcurtis@robco.net>\n" +
		"TO: MaintenanceTeam <maintenance@robco.net>\n" +
		"PRIORITY: URGENT\n\n" +
		"Stock is red. Priority re-route from Area 3 required immediately.\n" +
		"Reactor 2 showing instability. Need cells ASAP.\n" +
		"- J.C."},
	{Key: "DIARY_05", Body: ">> PERSONAL LOG - Day 127\n" +
		"Another day spent in the simulation. I swear I saw a ghoul\n" +
		"on the third floor today. Management keeps telling us it's\n" +
		"all part of the 'immersive experience' but something feels\n" +
		"wrong. The emergency broadcasts have been more frequent.\n" +
		"Sarah thinks we're not in a simulation at all.\n" +
		"I'm starting to believe her."},
	{Key: "DOOR_CTRL", Body: ">> DOOR CONTROL SYSTEM v2.1.7\n" +
		"SYSTEM STATUS: ONLINE\n" +
		"Access Level 4 Required for override.\n" +
		"Current User: GUEST (Level 1)\n\n" +
		"Available Commands:\n" +
		"- VIEW: Display door status\n" +
		"- HELP: Show command list\n" +
		"- LOGOUT: End session\n\n" +
		"For emergency access, contact Security."},
	{Key: "SECURITY", Body: ">> SECURITY ALERT LOG\n" +
		"WARNING: Multiple failed access attempts detected.\n" +
		"Unauthorized login attempts from Terminal B-7.\n" +
		"User: UNKNOWN\n" +
		"Time: 14:23:07\n\n" +
		"Lockdown protocols may be initiated if breaches continue.\n" +
		"Recommend immediate investigation."},
	{Key: "MAINTENANCE", Body: ">> SYSTEM DIAGNOSTIC REPORT\n" +
		"All primary systems nominal.\n" +
		"Radiation levels within acceptable parameters.\n" +
		"Backup power: 87% capacity\n" +
		"Air filtration: Operational\n\n" +
		"NOTE: Unusual power fluctuations detected in Sector C.\n" +
		"Scheduled maintenance required."},
	{Key: "RESEARCH", Body: ">> PROJECT PURITY - STATUS UPDATE\n" +
		"CLASSIFICATION: TOP SECRET\n" +
		"Progress report on water purification initiative.\n" +
		"Test results show 97.3% contamination removal.\n" +
		"Side effects within acceptable ranges.\n\n" +
		"Recommend proceeding to Phase 3 trials.\n" +
		"Subject procurement from local settlements ongoing."},
}
