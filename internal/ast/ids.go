package ast

type (
	ExprID uint32
	StmtID uint32
	PatID  uint32

	PayloadID uint32
	AttrID    uint32
)

const (
	NoExprID    ExprID    = 0
	NoStmtID    StmtID    = 0
	NoPatID     PatID     = 0
	NoPayloadID PayloadID = 0
	NoAttrID    AttrID    = 0
)

func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id StmtID) IsValid() bool    { return id != NoStmtID }
func (id PatID) IsValid() bool     { return id != NoPatID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
func (id AttrID) IsValid() bool    { return id != NoAttrID }
