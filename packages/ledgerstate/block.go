package ledgerstate

import (
	"strconv"

	"github.com/iotaledger/hive.go/stringify"
)

// region Block ////////////////////////////////////////////////////////////////////////////////////////////////////////

// Block is the ordered list of Transactions that were applied in a Slot.
type Block struct {
	slot         Slot
	transactions []*Transaction
}

// NewBlock is the constructor of a Block.
func NewBlock(slot Slot, transactions ...*Transaction) *Block {
	return &Block{
		slot:         slot,
		transactions: append([]*Transaction(nil), transactions...),
	}
}

// Slot returns the Slot in which the Block was created.
func (b *Block) Slot() Slot {
	return b.slot
}

// Transactions returns the Transactions of the Block in the order in which they were applied.
func (b *Block) Transactions() []*Transaction {
	return b.transactions
}

// String returns a human readable version of the Block.
func (b *Block) String() string {
	structBuilder := stringify.StructBuilder("Block",
		stringify.StructField("slot", b.slot),
	)
	for i, tx := range b.transactions {
		structBuilder.AddField(stringify.StructField(strconv.Itoa(i), tx.ID()))
	}

	return structBuilder.String()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Blockchain ///////////////////////////////////////////////////////////////////////////////////////////////////

// Blockchain is the immutable list of Blocks (oldest first).
type Blockchain struct {
	blocks []*Block
}

// NewBlockchain returns an empty Blockchain.
func NewBlockchain() *Blockchain {
	return &Blockchain{}
}

// Append returns the Blockchain that has the given Block as its newest Block.
func (b *Blockchain) Append(block *Block) *Blockchain {
	blocks := make([]*Block, len(b.blocks), len(b.blocks)+1)
	copy(blocks, b.blocks)

	return &Blockchain{
		blocks: append(blocks, block),
	}
}

// KeepLatest returns the Blockchain that only consists of the newest n Blocks.
func (b *Blockchain) KeepLatest(n int) *Blockchain {
	if n < 0 {
		n = 0
	}
	if len(b.blocks) <= n {
		return b
	}

	blocks := make([]*Block, n)
	copy(blocks, b.blocks[len(b.blocks)-n:])

	return &Blockchain{
		blocks: blocks,
	}
}

// Blocks returns the Blocks of the Blockchain (oldest first).
func (b *Blockchain) Blocks() []*Block {
	return b.blocks
}

// Len returns the amount of Blocks.
func (b *Blockchain) Len() int {
	return len(b.blocks)
}

// Tip returns the newest Block.
func (b *Blockchain) Tip() (block *Block, exists bool) {
	if len(b.blocks) == 0 {
		return nil, false
	}

	return b.blocks[len(b.blocks)-1], true
}

// Transaction returns the Transaction with the given TransactionID.
func (b *Blockchain) Transaction(transactionID TransactionID) (transaction *Transaction, exists bool) {
	for i := len(b.blocks) - 1; i >= 0; i-- {
		for _, tx := range b.blocks[i].transactions {
			if tx.ID() == transactionID {
				return tx, true
			}
		}
	}

	return nil, false
}

// Output returns the Output with the given OutputID if it was created by a Transaction of the Blockchain (no matter if
// it is spent already).
func (b *Blockchain) Output(outputID OutputID) (output *Output, exists bool) {
	tx, exists := b.Transaction(outputID.TransactionID())
	if !exists || int(outputID.OutputIndex()) >= len(tx.Outputs()) {
		return nil, false
	}

	return tx.Outputs()[outputID.OutputIndex()], true
}

// String returns a human readable version of the Blockchain.
func (b *Blockchain) String() string {
	return stringify.Struct("Blockchain",
		stringify.StructField("length", b.Len()),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
