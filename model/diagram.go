package model

import (
	"fmt"
	"time"
)

const (
	DefaultTargetNamespace = "http://bpmn.io/schema/bpmn"
	DefaultVersion         = "1.0"
)

func NewDiagram(id string) *Diagram {
	return &Diagram{
		Id:              id,
		TargetNamespace: DefaultTargetNamespace,
		Version:         DefaultVersion,
	}
}

// Diagram is the top-level container of processes, pools, message flows and global artifacts.
type Diagram struct {
	Id              string
	Name            string
	TargetNamespace string

	CreatedBy  string
	CreatedAt  time.Time
	ModifiedAt time.Time
	Version    string

	processes    []*Process
	pools        []*Pool
	messageFlows []*MessageFlow

	globalDataStores      []*DataStore
	globalTextAnnotations []*TextAnnotation
}

func (d *Diagram) AddGlobalDataStore(dataStore *DataStore) error {
	if dataStore == nil {
		return typeMismatch("failed to add global data store", dataStore)
	}
	return d.add(dataStore, func() { d.globalDataStores = append(d.globalDataStores, dataStore) })
}

func (d *Diagram) AddGlobalTextAnnotation(textAnnotation *TextAnnotation) error {
	if textAnnotation == nil {
		return typeMismatch("failed to add global text annotation", textAnnotation)
	}
	return d.add(textAnnotation, func() { d.globalTextAnnotations = append(d.globalTextAnnotations, textAnnotation) })
}

func (d *Diagram) AddMessageFlow(messageFlow *MessageFlow) error {
	if messageFlow == nil {
		return typeMismatch("failed to add message flow", messageFlow)
	}
	return d.add(messageFlow, func() { d.messageFlows = append(d.messageFlows, messageFlow) })
}

func (d *Diagram) AddPool(pool *Pool) error {
	if pool == nil {
		return typeMismatch("failed to add pool", pool)
	}
	return d.add(pool, func() { d.pools = append(d.pools, pool) })
}

func (d *Diagram) AddProcess(process *Process) error {
	if process == nil {
		return typeMismatch("failed to add process", process)
	}
	return d.add(process, func() { d.processes = append(d.processes, process) })
}

// AllProcesses returns the processes, referenced by pools, in pool order, followed by all other processes.
func (d *Diagram) AllProcesses() []*Process {
	processes := make([]*Process, 0, len(d.processes))

	resolved := make(map[*Process]bool, len(d.processes))
	for _, pool := range d.pools {
		process := d.ResolveProcess(pool)
		if process == nil || resolved[process] {
			continue
		}
		resolved[process] = true
		processes = append(processes, process)
	}

	for _, process := range d.processes {
		if !resolved[process] {
			processes = append(processes, process)
		}
	}
	return processes
}

// CountAllElements counts the diagram level elements and sums up the element counts of all processes.
func (d *Diagram) CountAllElements() Counts {
	counts := Counts{
		CountProcesses:             len(d.processes),
		CountPools:                 len(d.pools),
		CountMessageFlows:          len(d.messageFlows),
		CountGlobalDataStores:      len(d.globalDataStores),
		CountGlobalTextAnnotations: len(d.globalTextAnnotations),
	}

	for _, process := range d.processes {
		for key, n := range process.CountElements() {
			counts[key] += n
		}
	}
	return counts
}

// ElementById finds an element by searching the processes, pools and their lanes, message flows, global data stores
// and global text annotations, in that order.
// Elements of sub-processes, including attached boundary events, are found, when no process contains the ID directly.
func (d *Diagram) ElementById(id string) (Element, bool) {
	for _, process := range d.processes {
		if e, ok := process.ElementById(id); ok {
			return e, true
		}
	}
	for _, process := range d.processes {
		if e, ok := findInSubProcesses(process.subProcesses, id); ok {
			return e, true
		}
	}

	for _, pool := range d.pools {
		if pool.id == id {
			return pool, true
		}
		if lane, ok := findLane(pool.lanes, id); ok {
			return lane, true
		}
	}

	for _, messageFlow := range d.messageFlows {
		if messageFlow.id == id {
			return messageFlow, true
		}
	}
	for _, dataStore := range d.globalDataStores {
		if dataStore.id == id {
			return dataStore, true
		}
	}
	for _, textAnnotation := range d.globalTextAnnotations {
		if textAnnotation.id == id {
			return textAnnotation, true
		}
	}

	return nil, false
}

func (d *Diagram) GlobalDataStores() []*DataStore {
	return d.globalDataStores
}

func (d *Diagram) GlobalTextAnnotations() []*TextAnnotation {
	return d.globalTextAnnotations
}

// IsCollaboration determines if the diagram has pools.
func (d *Diagram) IsCollaboration() bool {
	return len(d.pools) != 0
}

func (d *Diagram) MessageFlows() []*MessageFlow {
	return d.messageFlows
}

func (d *Diagram) Pools() []*Pool {
	return d.pools
}

func (d *Diagram) Processes() []*Process {
	return d.processes
}

// ResolveProcess returns the process, a pool refers to, or nil if the pool has no or an unknown process reference.
func (d *Diagram) ResolveProcess(pool *Pool) *Process {
	if pool == nil || pool.ProcessRef == "" {
		return nil
	}
	for _, process := range d.processes {
		if process.id == pool.ProcessRef {
			return process
		}
	}
	return nil
}

func (d *Diagram) String() string {
	var collaboration string
	if d.IsCollaboration() {
		collaboration = fmt.Sprintf(" (collaboration with %d pools)", len(d.pools))
	}
	return fmt.Sprintf("BPMN Diagram '%s' [%d processes]%s", d.Name, len(d.processes), collaboration)
}

func (d *Diagram) add(e Element, appendElement func()) error {
	if err := e.Base().claim(); err != nil {
		return err
	}

	appendElement()

	d.ModifiedAt = time.Now()
	return nil
}
