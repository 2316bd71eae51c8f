package monitor

import (
	"time"

	"github.com/baselabs/baseutils/common"
	"github.com/baselabs/baseutils/util/reader"
)

// TxMonitor polls the nodes until a tx is mined, reverted or
// declared lost.
type TxMonitor struct {
	reader *reader.EthReader
}

func NewGenericTxMonitor(r *reader.EthReader) *TxMonitor {
	return &TxMonitor{r}
}

func (m TxMonitor) periodicCheck(tx string, info chan common.TxInfo) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	startTime := time.Now()
	isOnNode := false
	for {
		t := <-ticker.C
		txinfo, _ := m.reader.TxInfoFromHash(tx)
		switch txinfo.Status {
		case "error":
			continue
		case "notfound":
			if t.Sub(startTime) > 3*time.Minute && !isOnNode {
				info <- common.TxInfo{Status: "lost"}
				return
			}
			continue
		case "pending":
			isOnNode = true
			continue
		case "reverted", "done":
			block, _ := m.reader.HeaderByNumber(txinfo.Receipt.BlockNumber.Int64())
			txinfo.Block = block
			info <- txinfo
			return
		}
	}
}

func (m TxMonitor) MakeWaitChannel(tx string) <-chan common.TxInfo {
	result := make(chan common.TxInfo)
	go m.periodicCheck(tx, result)
	return result
}

func (m TxMonitor) BlockingWait(tx string) common.TxInfo {
	wChannel := m.MakeWaitChannel(tx)
	return <-wChannel
}
