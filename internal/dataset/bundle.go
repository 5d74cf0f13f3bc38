package dataset

// Bundle carries the five generated tables through validation and load,
// in dependency order.
type Bundle struct {
	Customers     Table
	Plans         Table
	Content       Table
	Subscriptions Table
	UsageLogs     Table
}

// Tables returns the bundle in dependency order.
func (b *Bundle) Tables() []*Table {
	return []*Table{&b.Customers, &b.Plans, &b.Content, &b.Subscriptions, &b.UsageLogs}
}
